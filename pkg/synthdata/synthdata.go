// Package synthdata builds realistic substitute values for the fields of
// a captured JSON payload. Generation is deterministic: the same nonce
// and key name always produce the same value, so scenario batteries are
// reproducible. Uniqueness across scenarios comes from varying the nonce,
// not from randomness. The single intentional exception is the leading
// phone-number digit, drawn from an injectable random source.
package synthdata

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/apiprobe/apiprobe/pkg/apicontext"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
)

// StaticAttribute pins a field to one fixed value across every generated
// scenario, overriding all generation logic for that field.
type StaticAttribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// fieldClass is the name-pattern classification of a payload key.
type fieldClass int

const (
	classGeneric fieldClass = iota
	classFirstName
	classLastName
	classEmail
	classContact
	classURL
	classLinkedIn
	classBusinessName
	classIdentifier
	classPhone
	classPassword
	classPrice
	classType
)

var (
	firstNameRe = regexp.MustCompile(`^(first[_-]?name|firstname|given[_-]?name|prenom)$`)
	lastNameRe  = regexp.MustCompile(`^(last[_-]?name|lastname|sur[_-]?name|surname|family[_-]?name|nom)$`)
)

// classify maps a key name onto a field class. First match wins; the
// order mirrors the value-construction rules.
func classify(key string) fieldClass {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "email"):
		return classEmail
	case strings.Contains(k, "password"):
		return classPassword
	case firstNameRe.MatchString(k),
		strings.Contains(k, "name") && strings.Contains(k, "first"):
		return classFirstName
	case lastNameRe.MatchString(k),
		strings.Contains(k, "name") && strings.Contains(k, "last"):
		return classLastName
	case strings.Contains(k, "linkedin"):
		return classLinkedIn
	case strings.Contains(k, "url") || strings.Contains(k, "website"):
		return classURL
	case strings.Contains(k, "username") || strings.Contains(k, "login"):
		return classContact
	case strings.Contains(k, "phone") || strings.Contains(k, "tel"):
		return classPhone
	case strings.Contains(k, "name"):
		return classBusinessName
	case strings.Contains(k, "price") || strings.Contains(k, "amount"):
		return classPrice
	case k == "type" || strings.HasSuffix(k, "type"):
		return classType
	case strings.Contains(k, "id") || strings.Contains(k, "ref") || strings.Contains(k, "code"):
		return classIdentifier
	default:
		return classGeneric
	}
}

// Generator produces substitute payload values from injected pools.
type Generator struct {
	pools *Pools

	// RequireUnique appends nonce-derived suffixes where a value would
	// otherwise repeat across scenarios. The fallback battery keeps it
	// on so failures attribute unambiguously.
	RequireUnique bool

	// randDigit supplies the leading phone digit (1-9), the only
	// non-deterministic value. Injectable for tests.
	randDigit func() int
}

// NewGenerator creates a generator over pools; nil pools selects the
// built-in defaults.
func NewGenerator(pools *Pools) *Generator {
	if pools == nil {
		pools = DefaultPools()
	}
	return &Generator{
		pools:         pools,
		RequireUnique: true,
		randDigit:     func() int { return 1 + rand.Intn(9) },
	}
}

// WithRandDigit replaces the phone-digit source. For deterministic tests.
func (g *Generator) WithRandDigit(fn func() int) *Generator {
	g.randDigit = fn
	return g
}

// index derives the deterministic per-key selection index.
func index(nonce int64, key string) int {
	v := nonce + int64(len(key))
	if v < 0 {
		v = -v
	}
	return int(v % 1000)
}

// pick selects from pool by idx; empty pools yield "".
func pick(pool []string, idx int) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[idx%len(pool)]
}

// Populate replaces the values of obj in place. Every key already present
// gets a decision; no key is ever added. Static attributes are applied
// first, verbatim, and excluded from generation.
func (g *Generator) Populate(obj *jsonutil.Object, domain apicontext.Domain, nonce int64, static []StaticAttribute) {
	pinned := make(map[string]bool, len(static))
	for _, attr := range static {
		if obj.Has(attr.Name) {
			obj.Set(attr.Name, attr.Value)
			pinned[attr.Name] = true
		}
	}

	for _, key := range obj.Keys() {
		if pinned[key] {
			continue
		}
		if v, replaced := g.value(key, obj.Get(key), domain, nonce); replaced {
			obj.Set(key, v)
		}
	}
}

// value decides the replacement for one key. The second return is false
// when the original value should be left unchanged.
func (g *Generator) value(key string, original any, domain apicontext.Domain, nonce int64) (any, bool) {
	idx := index(nonce, key)
	k := strings.ToLower(key)

	switch classify(key) {
	case classEmail:
		first := strings.ToLower(pick(g.pools.FirstNames, idx))
		last := strings.ToLower(pick(g.pools.LastNames, idx))
		return fmt.Sprintf("%s.%s.%d@example.com", first, last, nonce), true

	case classFirstName:
		return pick(g.pools.FirstNames, idx), true

	case classLastName:
		return pick(g.pools.LastNames, idx), true

	case classContact:
		first := strings.ToLower(pick(g.pools.FirstNames, idx))
		return fmt.Sprintf("%s%d", first, nonce), true

	case classBusinessName:
		name := g.businessName(k, domain, idx)
		if k == "name" && g.RequireUnique {
			name = fmt.Sprintf("%s %d", name, idx)
		}
		return name, true

	case classType:
		if domain == apicontext.DomainCompany || strings.Contains(k, "company") {
			return pick(g.pools.CompanyTypes, idx), true
		}
		return original, false

	case classPhone:
		return fmt.Sprintf("0%d%08d", g.randDigit(), nonce%100000000), true

	case classLinkedIn:
		slug := companySlug(pick(g.pools.Companies, idx))
		suffix := pick(g.pools.LinkedIn, idx)
		return fmt.Sprintf("https://linkedin.com/company/%s%s-%d", slug, suffix, nonce), true

	case classURL:
		slug := companySlug(pick(g.pools.Companies, idx))
		tld := pick(g.pools.TLDs, idx)
		return fmt.Sprintf("https://%s-%d%s", slug, nonce, tld), true

	case classPassword:
		return pick(g.pools.Passwords, idx), true

	case classPrice:
		return priceValue(nonce, idx), true

	case classIdentifier:
		return fmt.Sprintf("%s_%d_%d", k, nonce, idx), true

	default:
		if s, ok := original.(string); ok && len(s) > 10 {
			filler := pick(g.pools.fillerFor(domain), idx)
			if g.RequireUnique {
				filler = fmt.Sprintf("%s %d", filler, nonce)
			}
			return filler, true
		}
		return original, false
	}
}

// businessName picks a pool by domain affinity: product pool for
// product-ish keys, company pool otherwise.
func (g *Generator) businessName(k string, domain apicontext.Domain, idx int) string {
	productish := strings.Contains(k, "product") || strings.Contains(k, "item") ||
		domain == apicontext.DomainProduct
	companyish := strings.Contains(k, "company") || strings.Contains(k, "org") ||
		domain == apicontext.DomainCompany

	switch {
	case companyish:
		return pick(g.pools.Companies, idx)
	case productish:
		return pick(g.pools.Products, idx)
	default:
		return pick(g.pools.Companies, idx)
	}
}

// priceValue returns a deterministic float in [10, 1010) with 2 decimals.
func priceValue(nonce int64, idx int) float64 {
	cents := nonce % 100
	if cents < 0 {
		cents = -cents
	}
	v := 10 + float64(idx) + float64(cents)/100
	return math.Round(v*100) / 100
}

// companySlug lowercases a company name and strips spaces for use in
// hostnames and URL paths.
func companySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}
