package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateJWT_Success(t *testing.T) {
	token, err := GenerateJWT("cus_123", testSecret, time.Hour)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	_, err := GenerateJWT("cus_123", "", time.Hour)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET not set")
}

func TestValidateJWT_ValidToken(t *testing.T) {
	token, err := GenerateJWT("cus_123", testSecret, 0)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "cus_123", claims.CustomerID)
	assert.Equal(t, "cus_123", claims.Identity())

	// default ttl applies when none is given
	expectedExpiry := time.Now().Add(DefaultTokenTTL)
	assert.Less(t, claims.ExpiresAt.Time.Sub(expectedExpiry).Abs(), 5*time.Second)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	claims := Claims{
		CustomerID: "cus_123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString, testSecret)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("cus_123", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "different-secret-key")

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		CustomerID: "attacker",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := ValidateJWT(tokenString, testSecret)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestClaimsIdentity_FallsBackToSubject(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "cus_sub"}}

	assert.Equal(t, "cus_sub", claims.Identity())
}

func TestResolveIdentity(t *testing.T) {
	// no secret: the raw token is the identity
	identity, err := ResolveIdentity("paid_teacher", "")
	require.NoError(t, err)
	assert.Equal(t, "paid_teacher", identity)

	_, err = ResolveIdentity("  ", "")
	assert.Error(t, err)

	token, err := GenerateJWT("cus_999", testSecret, time.Hour)
	require.NoError(t, err)

	identity, err = ResolveIdentity(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "cus_999", identity)

	_, err = ResolveIdentity("not.a.jwt", testSecret)
	assert.Error(t, err)
}

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/whoami", RequireIdentity(secret), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.String(http.StatusOK, identity)
	})

	return router
}

func TestRequireIdentity(t *testing.T) {
	router := newAuthRouter("")

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header format"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "invalid authorization header format"},
		{"valid", "Bearer teacher-token", http.StatusOK, "teacher-token"},
		{"lowercase scheme", "bearer teacher-token", http.StatusOK, "teacher-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestRequireIdentity_JWT(t *testing.T) {
	router := newAuthRouter(testSecret)

	token, err := GenerateJWT("cus_jwt", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cus_jwt", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
