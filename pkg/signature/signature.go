// Package signature implements the gateway's RSA request signing: a canonical
// key=value string signed with RSASSA-PKCS1-v1_5 / SHA-256.
package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/pkg/rsakey"
)

const (
	FieldSign     = "sign"
	FieldSignType = "sign_type"
	// TypeRSA is the sign_type value the gateway expects.
	TypeRSA = "RSA"
)

// Params is a flat gateway parameter set.
type Params map[string]string

// FromValues flattens form values, keeping the first value of each key.
func FromValues(values url.Values) Params {
	params := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}

// CanonicalString drops sign, sign_type and blank values, sorts the remaining
// keys byte-wise and joins them as k=v pairs with '&'. Both the request
// builder and the notification verifier must go through this function.
func CanonicalString(params Params) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == FieldSign || k == FieldSignType {
			continue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

type Signer struct {
	key *rsa.PrivateKey
}

// NewSigner normalises raw key material. A *rsakey.KeyFormatError here is a
// configuration problem, not a per-request one.
func NewSigner(rawPrivateKey string) (*Signer, error) {
	key, err := rsakey.ParsePrivateKey(rawPrivateKey)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

// Sign returns the base64 signature of the canonical string of params.
func (s *Signer) Sign(params Params) (string, error) {
	digest := sha256.Sum256([]byte(CanonicalString(params)))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("can't sign params: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// SignParams sets sign_type and sign on params in place.
func (s *Signer) SignParams(params Params) error {
	params[FieldSignType] = TypeRSA
	sig, err := s.Sign(params)
	if err != nil {
		return err
	}
	params[FieldSign] = sig
	return nil
}

type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(rawPublicKey string) (*Verifier, error) {
	key, err := rsakey.ParsePublicKey(rawPublicKey)
	if err != nil {
		return nil, err
	}
	return &Verifier{key: key}, nil
}

// Verify checks params["sign"] against the canonical string of params. A
// missing signature, bad base64 or a nil verifier all yield false.
func (v *Verifier) Verify(params Params) bool {
	if v == nil || v.key == nil {
		return false
	}
	claimed := params[FieldSign]
	if claimed == "" {
		return false
	}
	// Unescaped '+' arrives as ' ' through form decoding.
	sig, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(claimed, " ", "+"))
	if err != nil {
		zap.L().Warn("signature is not valid base64", zap.Error(err))
		return false
	}
	digest := sha256.Sum256([]byte(CanonicalString(params)))
	return rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], sig) == nil
}
