package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/testhelpers"
)

const testJWTSecret = "api-test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	router := gin.New()
	SetupAPI(router, db, nil, testJWTSecret, nil)
	return router, db
}

// registerUser creates an account through the public endpoint and returns
// the issued token together with the stored user row.
func registerUser(t *testing.T, router *gin.Engine, db *gorm.DB, username string) (string, *models.User) {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"username":%q,"first_name":"Test","last_name":"User","password":"password123"}`,
		username+"@example.com", username)
	rec := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	return resp.Token, &user
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}
