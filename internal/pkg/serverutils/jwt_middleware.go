package serverutils

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
)

const keySetCacheKey = "remote_key_set"

// AuthVerifier validates bearer tokens. It is constructed once at process
// start and owns the remote key set cache; nothing else in the core talks
// to the identity provider.
type AuthVerifier struct {
	secret  []byte
	jwksURL string
	keys    *gocache.Cache
	client  *http.Client
}

func NewAuthVerifier(secret, jwksURL string, keyTTL time.Duration) *AuthVerifier {
	return &AuthVerifier{
		secret:  []byte(secret),
		jwksURL: jwksURL,
		keys:    gocache.New(keyTTL, 2*keyTTL),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Middleware authenticates the request and exposes the verified uid plus
// denormalized profile claims via Locals.
func (v *AuthVerifier) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, v.keyFunc)
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		uid, _ := claims["sub"].(string)
		if uid == "" {
			uid, _ = claims["uid"].(string)
		}
		if uid == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing subject"})
		}

		ctx.Locals("uid", uid)
		if email, ok := claims["email"].(string); ok {
			ctx.Locals("email", email)
		}
		if name, ok := claims["name"].(string); ok {
			ctx.Locals("name", name)
		}
		if picture, ok := claims["picture"].(string); ok {
			ctx.Locals("picture", picture)
		}
		return ctx.Next()
	}
}

func (v *AuthVerifier) keyFunc(t *jwt.Token) (interface{}, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("HMAC token but no shared secret configured")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("RSA token missing kid header")
		}
		return v.publicKey(kid)
	default:
		return nil, fmt.Errorf("unsupported signing method %s", t.Method.Alg())
	}
}

type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

// publicKey resolves a signing key by kid from the cached remote key set,
// refreshing the set when the cache has expired or the kid is unknown.
func (v *AuthVerifier) publicKey(kid string) (*rsa.PublicKey, error) {
	if cached, found := v.keys.Get(keySetCacheKey); found {
		if key, ok := cached.(map[string]*rsa.PublicKey)[kid]; ok {
			return key, nil
		}
	}

	keySet, err := v.fetchKeySet()
	if err != nil {
		return nil, err
	}
	v.keys.Set(keySetCacheKey, keySet, gocache.DefaultExpiration)

	key, ok := keySet[kid]
	if !ok {
		return nil, fmt.Errorf("no key with kid %q in remote key set", kid)
	}
	return key, nil
}

func (v *AuthVerifier) fetchKeySet() (map[string]*rsa.PublicKey, error) {
	if v.jwksURL == "" {
		return nil, fmt.Errorf("no JWKS URL configured")
	}

	resp, err := v.client.Get(v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch key set: status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}

	keySet := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			continue
		}
		keySet[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}
	return keySet, nil
}

// Uid pulls the verified user id set by the auth middleware.
func Uid(ctx *fiber.Ctx) string {
	uid, _ := ctx.Locals("uid").(string)
	return uid
}
