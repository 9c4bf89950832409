package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwellio/dwellio-api/pkg/logger"
)

// systemOwnerEmail owns every imported listing; the account is created on
// first run and cannot log in (it has no usable password hash).
const systemOwnerEmail = "import@dwellio.local"

var copyColumns = []string{
	"property_uid", "title", "description", "property_type", "price",
	"state", "city", "area_sqft", "bedrooms", "bathrooms",
	"amenities", "furnished", "listed_by", "tags",
	"rating", "listing_type", "created_by",
}

type Importer struct {
	pool      *pgxpool.Pool
	client    *http.Client
	batchSize int
}

func New(pool *pgxpool.Pool, batchSize int) *Importer {
	if batchSize < 1 {
		batchSize = 500
	}
	return &Importer{
		pool:      pool,
		client:    &http.Client{Timeout: 2 * time.Minute},
		batchSize: batchSize,
	}
}

// Run downloads the CSV at url and bulk-inserts its rows as active listings
// under the system owner. It returns the number of rows imported.
func (im *Importer) Run(ctx context.Context, url string) (int, error) {
	ownerID, err := im.ensureSystemOwner(ctx)
	if err != nil {
		return 0, fmt.Errorf("ensure system owner: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := im.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download csv: unexpected status %d", resp.StatusCode)
	}

	return im.importRows(ctx, ownerID, resp.Body)
}

func (im *Importer) importRows(ctx context.Context, ownerID int64, body io.Reader) (int, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	total := 0
	batch := make([][]any, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := im.pool.CopyFrom(ctx, pgx.Identifier{"properties"}, copyColumns, pgx.CopyFromRows(batch))
		if err != nil {
			return fmt.Errorf("copy batch: %w", err)
		}
		total += int(n)
		batch = batch[:0]
		return nil
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		title := field("title")
		if title == "" {
			logger.Warn("Skipping row without title", "line", line)
			continue
		}

		batch = append(batch, []any{
			uuid.NewString(),
			title,
			field("description"),
			normalizeEnum(field("propertyType"), propertyTypes, "Apartment"),
			parseFloat(field("price")),
			field("state"),
			field("city"),
			parseFloat(field("area")),
			parseInt(field("bedrooms")),
			parseFloat(field("bathrooms")),
			splitList(field("amenities")),
			normalizeEnum(field("furnished"), furnishedValues, "Unfurnished"),
			normalizeEnum(field("listedBy"), listedByValues, "Owner"),
			splitList(field("tags")),
			clampRating(parseFloat(field("rating"))),
			normalizeEnum(field("listingType"), listingTypes, "sale"),
			ownerID,
		})

		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}

	logger.Info("CSV import finished", "rows", total)
	return total, nil
}

func (im *Importer) ensureSystemOwner(ctx context.Context) (int64, error) {
	const q = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, '!', 'admin')
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`

	var id int64
	err := im.pool.QueryRow(ctx, q, systemOwnerEmail).Scan(&id)
	return id, err
}

var (
	propertyTypes   = []string{"Apartment", "Villa", "Bungalow", "Studio", "Penthouse"}
	furnishedValues = []string{"Furnished", "Semi", "Unfurnished"}
	listedByValues  = []string{"Owner", "Agent", "Builder"}
	listingTypes    = []string{"sale", "rent"}
)

// normalizeEnum matches value against allowed case-insensitively so CSV rows
// with mixed casing still land on a valid enum.
func normalizeEnum(value string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a
		}
	}
	return fallback
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
