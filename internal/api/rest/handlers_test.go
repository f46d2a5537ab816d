package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainclient "github.com/juristack/lawoffice-backend/internal/domain/client"
	clientsvc "github.com/juristack/lawoffice-backend/internal/service/client"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*domainclient.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*domainclient.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *domainclient.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *domainclient.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*domainclient.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(_ context.Context, onlyActive bool) ([]*domainclient.Client, error) {
	var out []*domainclient.Client
	for _, c := range r.clients {
		if onlyActive && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) ExistsWithValue(_ context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
	for _, c := range r.clients {
		if c.ID == excludeID {
			continue
		}
		if field == "tax_id" && c.TaxID.Digits() == value {
			return true, nil
		}
		if field == "email" && c.Email.String() == value {
			return true, nil
		}
	}
	return false, nil
}

func testHandler(t *testing.T) (*Handler, *fakeClientRepo) {
	t.Helper()
	repo := newFakeClientRepo()
	services := &Services{
		Clients: clientsvc.NewService(repo, zap.NewNop()),
	}
	return NewHandler(services, zap.NewNop()), repo
}

const validClientBody = `{
	"name": "João da Silva",
	"kind": "individual",
	"tax_id": "111.444.777-35",
	"email": "joao.silva@example.com.br",
	"phone": "(11) 98765-4321",
	"state": "SP",
	"postal_code": "01310-100"
}`

func TestHandleCreateClient(t *testing.T) {
	h, repo := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(validClientBody))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.clients, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "111.444.777-35", body["tax_id"])
}

func TestHandleCreateClientValidationError(t *testing.T) {
	h, repo := testHandler(t)

	bad := strings.Replace(validClientBody, "111.444.777-35", "111.444.777-36", 1)
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(bad))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, repo.clients)

	var body problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "tax_id", body.Fields[0].Field)
	assert.Equal(t, "invalid_check_digit", body.Fields[0].Kind)
	assert.Equal(t, "dígito verificador inválido", body.Fields[0].Message)
}

func TestHandleCreateClientMissingFields(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"name": "X"}`))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	fields := make(map[string]string, len(body.Fields))
	for _, f := range body.Fields {
		fields[f.Field] = f.Kind
	}
	assert.Equal(t, "required", fields["kind"])
	assert.Equal(t, "required", fields["tax_id"])
	assert.Equal(t, "required", fields["email"])
}

func TestHandleCreateClientRejectsUnknownFields(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"nome": "João"}`))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleDuplicateTaxID(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(validClientBody))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(validClientBody))
	w = httptest.NewRecorder()
	h.handleCreateClient(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	kinds := make(map[string]string, len(body.Fields))
	for _, f := range body.Fields {
		kinds[f.Field] = f.Kind
	}
	assert.Equal(t, "duplicate_value", kinds["tax_id"])
	assert.Equal(t, "duplicate_value", kinds["email"])
}

func TestHandleExportClients(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(validClientBody))
	w := httptest.NewRecorder()
	h.handleCreateClient(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/clients/export", nil)
	w = httptest.NewRecorder()
	h.handleExportClients(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "111.444.777-35")
}
