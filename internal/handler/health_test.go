package handler_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"catalogo/internal/handler"
	"catalogo/internal/infra"
	"catalogo/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthEngine(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h)
	return r
}

func TestHealth_SchemaCompleto(t *testing.T) {
	db := testutil.NewDB(t)

	w := httptest.NewRecorder()
	healthEngine(handler.Health(db)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","schema":"ok"}`, w.Body.String())
}

func TestHealth_SchemaAusente(t *testing.T) {
	db, err := infra.Open("sqlite", filepath.Join(t.TempDir(), "vazio.db"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	healthEngine(handler.Health(db)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false,"db":"connected","schema":"missing"}`, w.Body.String())
}

func TestHealth_BancoFechado(t *testing.T) {
	db, err := infra.Open("sqlite", filepath.Join(t.TempDir(), "fechado.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	healthEngine(handler.Health(db)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false,"db":"error","schema":"unknown"}`, w.Body.String())
}
