package jwt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahhussein/afterbuy-sdk/pkg/redis"
)

// Test data constants
const (
	testClientID = "erp-connector"
	testIssuer   = "afterbuy-gateway"
)

var (
	testAccessSecret = "access-secret-key"
	testAccessExpiry = time.Minute * 15
	testNow          = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
)

// Helper function to create a JWT client without revocation for testing
func createTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(
		WithAccessTokenSecret(testAccessSecret),
		WithAccessTokenExpiry(testAccessExpiry),
		WithIssuer(testIssuer),
	)
	require.NoError(t, err, "Failed to create JWT client")
	return client.(*Client)
}

// Helper function to create a JWT client with a mocked Redis revocation store
func createRevocationClient(t *testing.T) (*Client, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(redis.NewFromUniversal(db))
	store.now = func() time.Time { return testNow }

	client, err := NewWithRevocation(store,
		WithAccessTokenSecret(testAccessSecret),
		WithAccessTokenExpiry(testAccessExpiry),
		WithIssuer(testIssuer),
	)
	require.NoError(t, err, "Failed to create JWT client")

	c := client.(*Client)
	c.now = func() time.Time { return testNow }
	return c, mock
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrAccessTokenSecretRequired)
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(WithAccessTokenSecret(testAccessSecret))
	require.NoError(t, err)

	assert.Equal(t, DefaultAccessTokenExpiry, client.GetAccessTokenExpiry())
	assert.Equal(t, DefaultIssuer, client.GetConfig().Issuer)
}

func TestNewWithConfig(t *testing.T) {
	client, err := NewWithConfig(TokenConfig{
		AccessTokenSecret: testAccessSecret,
		AccessTokenExpiry: 2 * time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, client.GetAccessTokenExpiry())
	assert.Equal(t, DefaultIssuer, client.GetConfig().Issuer, "Empty issuer keeps the default")

	_, err = NewWithConfig(TokenConfig{})
	assert.ErrorIs(t, err, ErrAccessTokenSecretRequired)
}

func TestAccessTokenGenerationAndValidation(t *testing.T) {
	client := createTestClient(t)

	tokenString, err := client.GenerateAccessToken(testClientID, "orders:read", "orders:write")
	require.NoError(t, err, "GenerateAccessToken should not return error")
	require.NotEmpty(t, tokenString, "Generated token should not be empty")

	claims, err := client.ValidateAccessToken(context.Background(), tokenString)
	require.NoError(t, err, "ValidateAccessToken should not return error")

	assert.Equal(t, testClientID, claims.ClientID)
	assert.Equal(t, testClientID, claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID, "Token should carry an id")
	assert.True(t, claims.HasScope("orders:write"))
	assert.False(t, claims.HasScope("catalog:read"))
}

func TestGenerateAccessToken_UniqueIDs(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()

	first, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)
	second, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	a, err := client.ValidateAccessToken(ctx, first)
	require.NoError(t, err)
	b, err := client.ValidateAccessToken(ctx, second)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()

	otherSecret, err := New(WithAccessTokenSecret("another-secret"), WithIssuer(testIssuer))
	require.NoError(t, err)
	foreignToken, err := otherSecret.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	otherIssuer, err := New(WithAccessTokenSecret(testAccessSecret), WithIssuer("someone-else"))
	require.NoError(t, err)
	wrongIssuerToken, err := otherIssuer.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		ClientID:  testClientID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: foreignToken},
		{name: "wrong issuer", token: wrongIssuerToken},
		{name: "unsigned", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := client.ValidateAccessToken(ctx, tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	client := createTestClient(t)
	client.now = func() time.Time { return testNow }

	tokenString, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	client.now = func() time.Time { return testNow.Add(testAccessExpiry + time.Minute) }

	_, err = client.ValidateAccessToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAccessToken_WrongType(t *testing.T) {
	client := createTestClient(t)

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		ClientID:  testClientID,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	_, err = client.ValidateAccessToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestGetTokenExpiration(t *testing.T) {
	client := createTestClient(t)
	client.now = func() time.Time { return testNow }

	tokenString, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	// expired tokens still report their expiry
	client.now = func() time.Time { return testNow.Add(24 * time.Hour) }

	exp, err := client.GetTokenExpiration(tokenString)
	require.NoError(t, err)
	assert.True(t, exp.Equal(testNow.Add(testAccessExpiry)), "expiry %s", exp)

	_, err = client.GetTokenExpiration("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeToken_NoStore(t *testing.T) {
	client := createTestClient(t)

	tokenString, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)

	err = client.RevokeToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrNoStoreConfigured)
}

func TestRevokeToken(t *testing.T) {
	client, mock := createRevocationClient(t)
	ctx := context.Background()

	tokenString, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)
	claims, err := client.parse(tokenString)
	require.NoError(t, err)

	key := "jwt:revoked:" + claims.ID
	mock.ExpectExists(key).SetVal(0)
	mock.ExpectSet(key, "1", testAccessExpiry).SetVal("OK")
	mock.ExpectExists(key).SetVal(1)

	_, err = client.ValidateAccessToken(ctx, tokenString)
	require.NoError(t, err, "Token should be valid before revocation")

	require.NoError(t, client.RevokeToken(ctx, tokenString))

	_, err = client.ValidateAccessToken(ctx, tokenString)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeToken_InvalidToken(t *testing.T) {
	client, mock := createRevocationClient(t)

	err := client.RevokeToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
	require.NoError(t, mock.ExpectationsWereMet(), "Invalid tokens never reach Redis")
}

func TestValidateAccessToken_StoreError(t *testing.T) {
	client, mock := createRevocationClient(t)

	tokenString, err := client.GenerateAccessToken(testClientID)
	require.NoError(t, err)
	claims, err := client.parse(tokenString)
	require.NoError(t, err)

	mock.ExpectExists("jwt:revoked:" + claims.ID).SetErr(errors.New("connection refused"))

	_, err = client.ValidateAccessToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenRevoked)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRedisStore_RevokeExpired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(redis.NewFromUniversal(db))
	store.now = func() time.Time { return testNow }

	err := store.Revoke(context.Background(), "01HX", testNow.Add(-time.Second))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "Expired tokens are not written")
}

func TestConcurrentTokenGeneration(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := client.GenerateAccessToken(testClientID)
			if err != nil {
				errs <- err
				return
			}
			if _, err := client.ValidateAccessToken(ctx, token); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
