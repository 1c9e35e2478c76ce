package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeshuachrist/ycapi/internal/config"
)

const (
	quickAuthJWKSURL     = "https://auth.farcaster.xyz/.well-known/jwks.json"
	jwksRefreshInterval  = time.Hour
	primaryAddressURL    = "https://api.farcaster.xyz/fc/primary-address"
	quickAuthHTTPTimeout = 4 * time.Second
)

// QuickAuthVerifier validates Farcaster Quick Auth bearer tokens (ES256 JWTs
// signed by the auth server) and checks fids against the admin allowlist.
type QuickAuthVerifier struct {
	client    *http.Client
	jwksURL   string
	domain    string
	adminFids []int64

	mu        sync.RWMutex
	keys      map[string]*ecdsa.PublicKey
	fetchedAt time.Time
}

// NewQuickAuthVerifier creates a verifier from the application configuration
func NewQuickAuthVerifier(cfg *config.Config) *QuickAuthVerifier {
	return &QuickAuthVerifier{
		client:    &http.Client{Timeout: quickAuthHTTPTimeout},
		jwksURL:   quickAuthJWKSURL,
		domain:    cfg.QuickAuthDomain,
		adminFids: cfg.AdminFidList(),
	}
}

// IsAdminFid reports whether fid is on the configured admin allowlist
func (v *QuickAuthVerifier) IsAdminFid(fid int64) bool {
	for _, allowed := range v.adminFids {
		if allowed == fid {
			return true
		}
	}
	return false
}

// VerifyToken validates a Quick Auth JWT for the given request domain and
// returns the fid it asserts. The configured domain wins over the request
// host when set. Every failure collapses to ErrUnauthenticated.
func (v *QuickAuthVerifier) VerifyToken(ctx context.Context, token, requestDomain string) (int64, error) {
	domain := v.domain
	if domain == "" {
		domain = requestDomain
	}

	parsed, err := jwt.Parse(token, v.keyFunc(ctx),
		jwt.WithValidMethods([]string{"ES256"}),
		jwt.WithAudience(domain),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return 0, ErrUnauthenticated
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, ErrUnauthenticated
	}
	fid, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || fid <= 0 {
		return 0, ErrUnauthenticated
	}
	return fid, nil
}

func (v *QuickAuthVerifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		key, err := v.signingKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		return key, nil
	}
}

func (v *QuickAuthVerifier) signingKey(ctx context.Context, kid string) (*ecdsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Since(v.fetchedAt) < jwksRefreshInterval
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		if ok {
			// A stale key beats no key when the JWKS endpoint is down.
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Crv string `json:"crv"`
		Kid string `json:"kid"`
		X   string `json:"x"`
		Y   string `json:"y"`
	} `json:"keys"`
}

func (v *QuickAuthVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks fetch: bad status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}

	keys := make(map[string]*ecdsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "EC" || k.Crv != "P-256" {
			continue
		}
		xBytes, err := base64.RawURLEncoding.DecodeString(k.X)
		if err != nil {
			continue
		}
		yBytes, err := base64.RawURLEncoding.DecodeString(k.Y)
		if err != nil {
			continue
		}
		keys[k.Kid] = &ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(xBytes),
			Y:     new(big.Int).SetBytes(yBytes),
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("jwks fetch: no usable keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

type primaryAddressResponse struct {
	Result struct {
		Address struct {
			Address string `json:"address"`
		} `json:"address"`
	} `json:"result"`
}

// ResolvePrimaryAddress looks up the fid's primary Ethereum address.
// Best-effort: failures return an empty string.
func (v *QuickAuthVerifier) ResolvePrimaryAddress(ctx context.Context, fid int64) string {
	url := fmt.Sprintf("%s?fid=%d&protocol=ethereum", primaryAddressURL, fid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var data primaryAddressResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ""
	}
	return data.Result.Address.Address
}
