package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-querystring/query"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/http/handlers"
	"github.com/dwellio/dwellio-api/internal/service"
	"github.com/dwellio/dwellio-api/pkg/auth"
	"github.com/dwellio/dwellio-api/pkg/cache"
	"github.com/dwellio/dwellio-api/pkg/events"
	mw "github.com/dwellio/dwellio-api/pkg/middleware"
)

const testSecret = "test-secret"

// ---------- Mocks ----------

type mockUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	m.nextID++
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type mockPropertyRepo struct {
	nextID     int64
	properties map[int64]*domain.Property
	getCalls   int
	lastFilter domain.PropertyFilter
	listResult []domain.Property
	listTotal  int64
}

func newMockPropertyRepo() *mockPropertyRepo {
	return &mockPropertyRepo{nextID: 1, properties: make(map[int64]*domain.Property)}
}

func (m *mockPropertyRepo) Create(_ context.Context, ownerID int64, req *domain.CreatePropertyRequest, propertyUID string) (*domain.Property, error) {
	p := &domain.Property{
		ID:           m.nextID,
		PropertyUID:  propertyUID,
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Price:        req.Price,
		State:        req.State,
		City:         req.City,
		Furnished:    req.Furnished,
		ListedBy:     req.ListedBy,
		ListingType:  req.ListingType,
		Status:       domain.PropertyActive,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.properties[p.ID] = p
	m.nextID++
	return p, nil
}

func (m *mockPropertyRepo) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	m.getCalls++
	p, ok := m.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPropertyRepo) List(_ context.Context, filter domain.PropertyFilter) ([]domain.Property, int64, error) {
	m.lastFilter = filter
	return m.listResult, m.listTotal, nil
}

func (m *mockPropertyRepo) Update(_ context.Context, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Status != nil {
		p.Status = domain.PropertyStatus(*req.Status)
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *mockPropertyRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.properties[id]; !ok {
		return false, nil
	}
	delete(m.properties, id)
	return true, nil
}

type favoriteKey struct{ userID, propertyID int64 }

type mockFavoriteRepo struct {
	nextID    int64
	favorites map[favoriteKey]*domain.Favorite
}

func newMockFavoriteRepo() *mockFavoriteRepo {
	return &mockFavoriteRepo{nextID: 1, favorites: make(map[favoriteKey]*domain.Favorite)}
}

func (m *mockFavoriteRepo) Create(_ context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	f := &domain.Favorite{
		ID:         m.nextID,
		UserID:     userID,
		PropertyID: propertyID,
		Notes:      notes,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.favorites[favoriteKey{userID, propertyID}] = f
	m.nextID++
	return f, nil
}

func (m *mockFavoriteRepo) FindByUserAndProperty(_ context.Context, userID, propertyID int64) (*domain.Favorite, error) {
	f, ok := m.favorites[favoriteKey{userID, propertyID}]
	if !ok {
		return nil, nil
	}
	return f, nil
}

func (m *mockFavoriteRepo) ListByUser(_ context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for k, f := range m.favorites {
		if k.userID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockFavoriteRepo) UpdateNotes(_ context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	f, ok := m.favorites[favoriteKey{userID, propertyID}]
	if !ok {
		return nil, nil
	}
	f.Notes = notes
	f.UpdatedAt = time.Now()
	return f, nil
}

func (m *mockFavoriteRepo) Delete(_ context.Context, userID, propertyID int64) (bool, error) {
	k := favoriteKey{userID, propertyID}
	if _, ok := m.favorites[k]; !ok {
		return false, nil
	}
	delete(m.favorites, k)
	return true, nil
}

type recommendationKey struct{ senderID, receiverID, propertyID int64 }

type mockRecommendationRepo struct {
	nextID          int64
	recommendations map[int64]*domain.Recommendation
	triples         map[recommendationKey]int64
}

func newMockRecommendationRepo() *mockRecommendationRepo {
	return &mockRecommendationRepo{
		nextID:          1,
		recommendations: make(map[int64]*domain.Recommendation),
		triples:         make(map[recommendationKey]int64),
	}
}

func (m *mockRecommendationRepo) Create(_ context.Context, senderID, receiverID, propertyID int64, message string) (*domain.Recommendation, error) {
	rec := &domain.Recommendation{
		ID:         m.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		PropertyID: propertyID,
		Message:    message,
		Status:     domain.RecommendationPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.recommendations[rec.ID] = rec
	m.triples[recommendationKey{senderID, receiverID, propertyID}] = rec.ID
	m.nextID++
	return rec, nil
}

func (m *mockRecommendationRepo) FindByTriple(_ context.Context, senderID, receiverID, propertyID int64) (*domain.Recommendation, error) {
	id, ok := m.triples[recommendationKey{senderID, receiverID, propertyID}]
	if !ok {
		return nil, nil
	}
	return m.recommendations[id], nil
}

func (m *mockRecommendationRepo) GetByID(_ context.Context, id int64) (*domain.Recommendation, error) {
	rec, ok := m.recommendations[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (m *mockRecommendationRepo) ListReceived(_ context.Context, receiverID int64) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	for _, rec := range m.recommendations {
		if rec.ReceiverID == receiverID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockRecommendationRepo) ListSent(_ context.Context, senderID int64) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	for _, rec := range m.recommendations {
		if rec.SenderID == senderID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockRecommendationRepo) UpdateStatus(_ context.Context, id int64, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	rec, ok := m.recommendations[id]
	if !ok {
		return nil, nil
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	return rec, nil
}

type mockMailer struct {
	lastTo       string
	lastSender   string
	lastProperty string
}

func (m *mockMailer) SendRecommendationEmail(toEmail, senderEmail, propertyTitle, _ string) error {
	m.lastTo = toEmail
	m.lastSender = senderEmail
	m.lastProperty = propertyTitle
	return nil
}

// ---------- Test setup ----------

type testEnv struct {
	server          *httptest.Server
	users           *mockUserRepo
	properties      *mockPropertyRepo
	favorites       *mockFavoriteRepo
	recommendations *mockRecommendationRepo
	mailer          *mockMailer
	store           cache.Store
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:           newMockUserRepo(),
		properties:      newMockPropertyRepo(),
		favorites:       newMockFavoriteRepo(),
		recommendations: newMockRecommendationRepo(),
		mailer:          &mockMailer{},
		store:           cache.NewMemory(),
	}

	bus := events.Noop{}
	authSvc := service.NewAuthService(env.users, testSecret, time.Hour)
	propertySvc := service.NewPropertyService(env.properties, env.store, bus)
	favoriteSvc := service.NewFavoriteService(env.favorites, env.properties, env.store, bus)
	recommendationSvc := service.NewRecommendationService(env.recommendations, env.properties, env.users, env.store, bus, env.mailer)

	authHandler := handlers.NewAuthHandler(authSvc, testSecret)
	propertyHandler := handlers.NewPropertyHandler(propertySvc, authHandler.RequireAuth, mw.CacheResponse(env.store, cache.ListTTL))
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc, authHandler.RequireAuth)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationSvc, authHandler.RequireAuth)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/properties", propertyHandler.Routes())
		r.Mount("/favorites", favoriteHandler.Routes())
		r.Mount("/recommendations", recommendationHandler.Routes())
	})

	env.server = httptest.NewServer(r)
	t.Cleanup(env.server.Close)
	return env
}

func doJSON(t *testing.T, method, url, token string, body interface{}, wantStatus int) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		resp.Body.Close()
		t.Fatalf("%s %s: status %d, want %d, body %s", method, url, resp.StatusCode, wantStatus, buf.String())
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerUser(t *testing.T, env *testEnv, email string) (token string, userID int64) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/auth/register", "",
		map[string]string{"email": email, "password": "secret-password"}, http.StatusCreated)

	var result domain.AuthResponse
	decodeBody(t, resp, &result)
	if result.Token == "" {
		t.Fatal("expected token in register response")
	}
	return result.Token, result.User.ID
}

func createProperty(t *testing.T, env *testEnv, token, title string) int64 {
	t.Helper()
	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/properties", token, map[string]interface{}{
		"title":        title,
		"propertyType": "Apartment",
		"price":        250000,
		"state":        "TX",
		"city":         "Austin",
		"furnished":    "Unfurnished",
		"listedBy":     "Owner",
		"listingType":  "sale",
	}, http.StatusCreated)

	var result struct {
		Property domain.Property `json:"property"`
	}
	decodeBody(t, resp, &result)
	if result.Property.ID == 0 {
		t.Fatal("expected property ID")
	}
	return result.Property.ID
}

// ---------- Auth ----------

func TestRegister_Success(t *testing.T) {
	env := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/auth/register", "",
		map[string]string{"email": "Anna@Example.com", "password": "secret-password"}, http.StatusCreated)

	var result domain.AuthResponse
	decodeBody(t, resp, &result)

	if result.User.Email != "anna@example.com" {
		t.Fatalf("expected normalized email, got %q", result.User.Email)
	}

	claims, err := auth.Parse(result.Token, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Sub != result.User.ID || claims.Email != "anna@example.com" {
		t.Fatalf("unexpected claims: sub=%d email=%s", claims.Sub, claims.Email)
	}
}

func TestRegister_DuplicateEmail_BadRequest(t *testing.T) {
	env := setupTestServer(t)

	registerUser(t, env, "dup@example.com")

	// Same email, different casing.
	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/auth/register", "",
		map[string]string{"email": "DUP@example.com", "password": "secret-password"}, http.StatusBadRequest)

	var result map[string]string
	decodeBody(t, resp, &result)
	if result["status"] != "error" || result["message"] == "" {
		t.Fatalf("expected error envelope, got %v", result)
	}
}

func TestLogin_WrongCredentials_Unauthorized(t *testing.T) {
	env := setupTestServer(t)
	registerUser(t, env, "user@example.com")

	doJSON(t, http.MethodPost, env.server.URL+"/api/auth/login", "",
		map[string]string{"email": "user@example.com", "password": "wrong-password"}, http.StatusUnauthorized)

	doJSON(t, http.MethodPost, env.server.URL+"/api/auth/login", "",
		map[string]string{"email": "nobody@example.com", "password": "secret-password"}, http.StatusUnauthorized)
}

func TestLogin_Success(t *testing.T) {
	env := setupTestServer(t)
	registerUser(t, env, "user@example.com")

	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/auth/login", "",
		map[string]string{"email": "user@example.com", "password": "secret-password"}, http.StatusOK)

	var result domain.AuthResponse
	decodeBody(t, resp, &result)
	if result.Token == "" {
		t.Fatal("expected token")
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	env := setupTestServer(t)

	// Missing header.
	doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", "", nil, http.StatusUnauthorized)

	// Garbage token.
	doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", "not-a-jwt", nil, http.StatusUnauthorized)

	// Valid token whose user no longer exists.
	token, userID := registerUser(t, env, "gone@example.com")
	delete(env.users.users, userID)
	doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", token, nil, http.StatusUnauthorized)
}

// ---------- Properties ----------

func TestPropertyList_FilterRoundTrip(t *testing.T) {
	env := setupTestServer(t)

	minPrice := 1000.0
	maxBedrooms := 3
	filter := domain.PropertyFilter{
		Search:      "lake view",
		City:        "Austin",
		MinPrice:    &minPrice,
		MaxBedrooms: &maxBedrooms,
		SortBy:      "price",
		SortOrder:   "desc",
		Page:        2,
		Limit:       5,
	}

	values, err := query.Values(filter)
	if err != nil {
		t.Fatalf("encode filter: %v", err)
	}

	env.properties.listResult = []domain.Property{{ID: 1, Title: "One"}}
	env.properties.listTotal = 12

	resp := doJSON(t, http.MethodGet, env.server.URL+"/api/properties?"+values.Encode(), "", nil, http.StatusOK)

	var page domain.PropertyPage
	decodeBody(t, resp, &page)

	got := env.properties.lastFilter
	if got.Search != filter.Search || got.City != filter.City ||
		*got.MinPrice != minPrice || *got.MaxBedrooms != maxBedrooms ||
		got.SortBy != "price" || got.SortOrder != "desc" ||
		got.Page != 2 || got.Limit != 5 {
		t.Fatalf("filter did not round-trip: %+v", got)
	}

	if page.Page != 2 || page.Limit != 5 || page.Total != 12 || page.TotalPages != 3 {
		t.Fatalf("unexpected pagination meta: %+v", page)
	}
}

func TestPropertyList_PaginationDefaults(t *testing.T) {
	env := setupTestServer(t)
	env.properties.listTotal = 7

	resp := doJSON(t, http.MethodGet, env.server.URL+"/api/properties", "", nil, http.StatusOK)

	var page domain.PropertyPage
	decodeBody(t, resp, &page)

	if page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
		t.Fatalf("unexpected defaults: %+v", page)
	}
	if page.Properties == nil {
		t.Fatal("properties must be an empty array, not null")
	}
}

func TestPropertyGet_CacheRoundTrip(t *testing.T) {
	env := setupTestServer(t)
	token, _ := registerUser(t, env, "owner@example.com")
	id := createProperty(t, env, token, "Lakeside flat")
	url := fmt.Sprintf("%s/api/properties/%d", env.server.URL, id)

	calls := env.properties.getCalls

	resp := doJSON(t, http.MethodGet, url, "", nil, http.StatusOK)
	resp.Body.Close()
	if env.properties.getCalls != calls+1 {
		t.Fatalf("expected one store query, got %d", env.properties.getCalls-calls)
	}

	// Second read is served from cache.
	resp = doJSON(t, http.MethodGet, url, "", nil, http.StatusOK)
	resp.Body.Close()
	if env.properties.getCalls != calls+1 {
		t.Fatalf("expected cached read, got %d store queries", env.properties.getCalls-calls)
	}

	// An update invalidates; the next read reflects it.
	doJSON(t, http.MethodPut, url, token, map[string]string{"title": "Renovated flat"}, http.StatusOK).Body.Close()

	resp = doJSON(t, http.MethodGet, url, "", nil, http.StatusOK)
	var result struct {
		Property domain.Property `json:"property"`
	}
	decodeBody(t, resp, &result)
	if result.Property.Title != "Renovated flat" {
		t.Fatalf("read after update got stale title %q", result.Property.Title)
	}
}

func TestPropertyUpdate_NotOwner_Forbidden(t *testing.T) {
	env := setupTestServer(t)
	ownerToken, _ := registerUser(t, env, "owner@example.com")
	otherToken, _ := registerUser(t, env, "other@example.com")
	id := createProperty(t, env, ownerToken, "Owner only")
	url := fmt.Sprintf("%s/api/properties/%d", env.server.URL, id)

	doJSON(t, http.MethodPut, url, otherToken, map[string]string{"title": "Hijacked"}, http.StatusForbidden).Body.Close()
	doJSON(t, http.MethodDelete, url, otherToken, nil, http.StatusForbidden).Body.Close()

	// Owner still can.
	doJSON(t, http.MethodDelete, url, ownerToken, nil, http.StatusOK).Body.Close()
}

func TestPropertyGet_NotFound(t *testing.T) {
	env := setupTestServer(t)
	doJSON(t, http.MethodGet, env.server.URL+"/api/properties/999", "", nil, http.StatusNotFound).Body.Close()
}

// ---------- Favorites ----------

func TestFavorite_AddDuplicate_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	token, _ := registerUser(t, env, "fan@example.com")
	id := createProperty(t, env, token, "Favorite me")
	url := fmt.Sprintf("%s/api/favorites/%d", env.server.URL, id)

	doJSON(t, http.MethodPost, url, token, nil, http.StatusCreated).Body.Close()
	doJSON(t, http.MethodPost, url, token, nil, http.StatusBadRequest).Body.Close()
}

func TestFavorite_MissingProperty_NotFound(t *testing.T) {
	env := setupTestServer(t)
	token, _ := registerUser(t, env, "fan@example.com")

	doJSON(t, http.MethodPost, env.server.URL+"/api/favorites/999", token, nil, http.StatusNotFound).Body.Close()
	doJSON(t, http.MethodDelete, env.server.URL+"/api/favorites/999", token, nil, http.StatusNotFound).Body.Close()
}

func TestFavorite_ListInvalidatedOnWrite(t *testing.T) {
	env := setupTestServer(t)
	token, _ := registerUser(t, env, "fan@example.com")
	id := createProperty(t, env, token, "Cached favorite")

	// Warm the per-user favorites cache with an empty list.
	resp := doJSON(t, http.MethodGet, env.server.URL+"/api/favorites", token, nil, http.StatusOK)
	var before struct {
		Favorites []domain.Favorite `json:"favorites"`
	}
	decodeBody(t, resp, &before)
	if len(before.Favorites) != 0 {
		t.Fatalf("expected no favorites, got %d", len(before.Favorites))
	}

	url := fmt.Sprintf("%s/api/favorites/%d", env.server.URL, id)
	doJSON(t, http.MethodPost, url, token, map[string]string{"notes": "call agent"}, http.StatusCreated).Body.Close()

	resp = doJSON(t, http.MethodGet, env.server.URL+"/api/favorites", token, nil, http.StatusOK)
	var after struct {
		Favorites []domain.Favorite `json:"favorites"`
	}
	decodeBody(t, resp, &after)
	if len(after.Favorites) != 1 || after.Favorites[0].Notes != "call agent" {
		t.Fatalf("expected the new favorite after invalidation, got %+v", after.Favorites)
	}
}

// ---------- Recommendations ----------

func TestRecommendation_TripleConflict_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	senderToken, _ := registerUser(t, env, "sender@example.com")
	registerUser(t, env, "friend@example.com")
	id := createProperty(t, env, senderToken, "Worth a look")

	body := map[string]interface{}{"recipientEmail": "friend@example.com", "propertyId": id}
	doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", senderToken, body, http.StatusCreated).Body.Close()
	doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", senderToken, body, http.StatusBadRequest).Body.Close()

	if env.mailer.lastTo != "friend@example.com" {
		t.Fatalf("expected recommendation email to friend, got %q", env.mailer.lastTo)
	}
}

func TestRecommendation_MissingTargets_NotFound(t *testing.T) {
	env := setupTestServer(t)
	token, _ := registerUser(t, env, "sender@example.com")
	id := createProperty(t, env, token, "Exists")

	doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", token,
		map[string]interface{}{"recipientEmail": "ghost@example.com", "propertyId": id}, http.StatusNotFound).Body.Close()

	registerUser(t, env, "friend@example.com")
	doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", token,
		map[string]interface{}{"recipientEmail": "friend@example.com", "propertyId": int64(999)}, http.StatusNotFound).Body.Close()
}

func TestRecommendation_StatusUpdate_ReceiverOnly(t *testing.T) {
	env := setupTestServer(t)
	senderToken, _ := registerUser(t, env, "sender@example.com")
	receiverToken, _ := registerUser(t, env, "receiver@example.com")
	id := createProperty(t, env, senderToken, "Decide on me")

	resp := doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", senderToken,
		map[string]interface{}{"recipientEmail": "receiver@example.com", "propertyId": id}, http.StatusCreated)
	var created struct {
		Recommendation domain.Recommendation `json:"recommendation"`
	}
	decodeBody(t, resp, &created)
	if created.Recommendation.Status != domain.RecommendationPending {
		t.Fatalf("expected pending status, got %q", created.Recommendation.Status)
	}

	statusURL := fmt.Sprintf("%s/api/recommendations/%d/status", env.server.URL, created.Recommendation.ID)

	// Sender may not touch the status.
	doJSON(t, http.MethodPatch, statusURL, senderToken, map[string]string{"status": "viewed"}, http.StatusForbidden).Body.Close()

	// Receiver may, but only to a known status.
	doJSON(t, http.MethodPatch, statusURL, receiverToken, map[string]string{"status": "archived"}, http.StatusBadRequest).Body.Close()

	resp = doJSON(t, http.MethodPatch, statusURL, receiverToken, map[string]string{"status": "saved"}, http.StatusOK)
	var updated struct {
		Recommendation domain.Recommendation `json:"recommendation"`
	}
	decodeBody(t, resp, &updated)
	if updated.Recommendation.Status != domain.RecommendationSaved {
		t.Fatalf("expected saved, got %q", updated.Recommendation.Status)
	}

	// Any status may overwrite any other.
	doJSON(t, http.MethodPatch, statusURL, receiverToken, map[string]string{"status": "rejected"}, http.StatusOK).Body.Close()
}

func TestRecommendation_ReceivedAndSent(t *testing.T) {
	env := setupTestServer(t)
	senderToken, _ := registerUser(t, env, "sender@example.com")
	receiverToken, _ := registerUser(t, env, "receiver@example.com")
	id := createProperty(t, env, senderToken, "Shared listing")

	doJSON(t, http.MethodPost, env.server.URL+"/api/recommendations", senderToken,
		map[string]interface{}{"recipientEmail": "receiver@example.com", "propertyId": id, "message": "thoughts?"}, http.StatusCreated).Body.Close()

	resp := doJSON(t, http.MethodGet, env.server.URL+"/api/recommendations/received", receiverToken, nil, http.StatusOK)
	var received struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	decodeBody(t, resp, &received)
	if len(received.Recommendations) != 1 || received.Recommendations[0].Message != "thoughts?" {
		t.Fatalf("unexpected inbox: %+v", received.Recommendations)
	}

	resp = doJSON(t, http.MethodGet, env.server.URL+"/api/recommendations/sent", senderToken, nil, http.StatusOK)
	var sent struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	decodeBody(t, resp, &sent)
	if len(sent.Recommendations) != 1 {
		t.Fatalf("expected one sent recommendation, got %d", len(sent.Recommendations))
	}

	// The sender's inbox stays empty.
	resp = doJSON(t, http.MethodGet, env.server.URL+"/api/recommendations/received", senderToken, nil, http.StatusOK)
	var senderInbox struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	decodeBody(t, resp, &senderInbox)
	if len(senderInbox.Recommendations) != 0 {
		t.Fatalf("sender inbox should be empty, got %d", len(senderInbox.Recommendations))
	}
}
