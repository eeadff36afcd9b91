// Package rsakey turns gateway-issued RSA key material into keys the standard
// library can import. Gateways hand out keys with or without PEM armor, with
// literal "\n" escapes from env files, and often in legacy PKCS#1 form.
package rsakey

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

type Kind int

const (
	Private Kind = iota
	Public
)

const (
	labelPrivate      = "PRIVATE KEY"
	labelPublic       = "PUBLIC KEY"
	labelPKCS1Private = "RSA PRIVATE KEY"
	labelPKCS1Public  = "RSA PUBLIC KEY"

	lineWidth = 64
)

var (
	oidRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

	armorRe = regexp.MustCompile(`(?s)-----BEGIN ([A-Z0-9 ]+)-----(.*?)-----END ([A-Z0-9 ]+)-----`)
)

func (k Kind) label() string {
	if k == Public {
		return labelPublic
	}
	return labelPrivate
}

func (k Kind) String() string {
	if k == Public {
		return "public"
	}
	return "private"
}

type KeyFormatError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *KeyFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rsakey: %s key: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("rsakey: %s key: %s", e.Kind, e.Reason)
}

func (e *KeyFormatError) Unwrap() error {
	return e.Err
}

// Armor returns raw as canonical PEM text: existing armor keeps its label,
// a bare base64 body gets the generic label for kind. The body is re-wrapped
// at 64 columns either way.
func Armor(raw string, kind Kind) (string, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
	if text == "" {
		return "", &KeyFormatError{Kind: kind, Reason: "empty key material"}
	}

	label := kind.label()
	body := text
	if m := armorRe.FindStringSubmatch(text); m != nil {
		if m[1] != m[3] {
			return "", &KeyFormatError{Kind: kind, Reason: fmt.Sprintf("armor mismatch %q / %q", m[1], m[3])}
		}
		label, body = m[1], m[2]
	} else if strings.Contains(text, "-----") {
		return "", &KeyFormatError{Kind: kind, Reason: "broken PEM armor"}
	}

	body = strings.Join(strings.Fields(body), "")
	if body == "" {
		return "", &KeyFormatError{Kind: kind, Reason: "empty key body"}
	}

	var b strings.Builder
	b.WriteString("-----BEGIN " + label + "-----\n")
	for len(body) > lineWidth {
		b.WriteString(body[:lineWidth])
		b.WriteByte('\n')
		body = body[lineWidth:]
	}
	b.WriteString(body)
	b.WriteString("\n-----END " + label + "-----\n")
	return b.String(), nil
}

// decode reports whether the material carried a PKCS#1 or PKCS#8/SPKI label
// explicitly (armored) or was labelled generically by Armor.
func decode(raw string, kind Kind) (der []byte, explicit bool, err error) {
	explicit = armorRe.MatchString(strings.ReplaceAll(raw, `\n`, "\n"))

	armored, err := Armor(raw, kind)
	if err != nil {
		return nil, explicit, err
	}
	block, _ := pem.Decode([]byte(armored))
	if block == nil {
		return nil, explicit, &KeyFormatError{Kind: kind, Reason: "malformed base64 body"}
	}

	switch {
	case block.Type == labelPKCS1Private && kind == Private:
		der, err = WrapPKCS1Private(block.Bytes)
	case block.Type == labelPKCS1Public && kind == Public:
		der, err = WrapPKCS1Public(block.Bytes)
	case block.Type == kind.label():
		der = block.Bytes
	default:
		return nil, explicit, &KeyFormatError{Kind: kind, Reason: fmt.Sprintf("unexpected PEM label %q", block.Type)}
	}
	if err != nil {
		return nil, explicit, &KeyFormatError{Kind: kind, Reason: "can't build envelope", Err: err}
	}
	return der, explicit, nil
}

// WrapPKCS1Private builds
//
//	SEQUENCE { INTEGER 0, AlgorithmIdentifier(rsaEncryption), OCTET STRING pkcs1 }
func WrapPKCS1Private(pkcs1 []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		addRSAAlgorithm(b)
		b.AddASN1OctetString(pkcs1)
	})
	return b.Bytes()
}

// WrapPKCS1Public builds
//
//	SEQUENCE { AlgorithmIdentifier(rsaEncryption), BIT STRING (0x00 || pkcs1) }
func WrapPKCS1Public(pkcs1 []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addRSAAlgorithm(b)
		b.AddASN1BitString(pkcs1)
	})
	return b.Bytes()
}

func addRSAAlgorithm(b *cryptobyte.Builder) {
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidRSAEncryption)
		b.AddASN1NULL()
	})
}

func ParsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	der, explicit, err := decode(raw, Private)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil && !explicit {
		// Bare base64 may still be PKCS#1 under the generic label.
		if wrapped, wrapErr := WrapPKCS1Private(der); wrapErr == nil {
			key, err = x509.ParsePKCS8PrivateKey(wrapped)
		}
	}
	if err != nil {
		return nil, &KeyFormatError{Kind: Private, Reason: "can't parse PKCS#8", Err: err}
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, &KeyFormatError{Kind: Private, Reason: fmt.Sprintf("not an RSA key: %T", key)}
	}
	return rsaKey, nil
}

func ParsePublicKey(raw string) (*rsa.PublicKey, error) {
	der, explicit, err := decode(raw, Public)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil && !explicit {
		if wrapped, wrapErr := WrapPKCS1Public(der); wrapErr == nil {
			key, err = x509.ParsePKIXPublicKey(wrapped)
		}
	}
	if err != nil {
		return nil, &KeyFormatError{Kind: Public, Reason: "can't parse SPKI", Err: err}
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, &KeyFormatError{Kind: Public, Reason: fmt.Sprintf("not an RSA key: %T", key)}
	}
	return rsaKey, nil
}
