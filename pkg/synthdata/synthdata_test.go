package synthdata

import (
	"strings"
	"testing"

	"github.com/apiprobe/apiprobe/pkg/apicontext"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) *jsonutil.Object {
	t.Helper()
	obj, err := jsonutil.ParseObject([]byte(raw))
	require.NoError(t, err)
	return obj
}

func fixedDigit(g *Generator) *Generator {
	return g.WithRandDigit(func() int { return 6 })
}

func TestPopulateKeepsKeySet(t *testing.T) {
	raw := `{"email":"a@b.com","first_name":"Al","price":3,"notes":"some original long note","active":true}`
	obj := parse(t, raw)

	g := fixedDigit(NewGenerator(nil))
	g.Populate(obj, apicontext.DomainUser, 1700000000, nil)

	assert.Equal(t, []string{"email", "first_name", "price", "notes", "active"}, obj.Keys())
}

func TestPopulateIsDeterministic(t *testing.T) {
	raw := `{"email":"a@b.com","name":"Acme","user_id":"u1","website":"https://old.example"}`

	a := parse(t, raw)
	b := parse(t, raw)

	g := fixedDigit(NewGenerator(nil))
	g.Populate(a, apicontext.DomainCompany, 1700000000, nil)
	g.Populate(b, apicontext.DomainCompany, 1700000000, nil)

	aj, err := a.Marshal()
	require.NoError(t, err)
	bj, err := b.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(aj), string(bj))
}

func TestPopulateDifferentNoncesDiffer(t *testing.T) {
	raw := `{"email":"a@b.com"}`
	a := parse(t, raw)
	b := parse(t, raw)

	g := NewGenerator(nil)
	g.Populate(a, apicontext.DomainAuth, 100, nil)
	g.Populate(b, apicontext.DomainAuth, 101, nil)

	av, _ := a.GetString("email")
	bv, _ := b.GetString("email")
	assert.NotEqual(t, av, bv)
}

func TestStaticAttributeWinsVerbatim(t *testing.T) {
	obj := parse(t, `{"email":"a@b.com","tenant":"t1"}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainAuth, 42, []StaticAttribute{
		{Name: "email", Value: "pinned@corp.example"},
		{Name: "missing", Value: "never added"},
	})

	v, _ := obj.GetString("email")
	assert.Equal(t, "pinned@corp.example", v)
	assert.False(t, obj.Has("missing"))
}

func TestEmailValueShape(t *testing.T) {
	obj := parse(t, `{"email":"a@b.com"}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainAuth, 1700000001, nil)

	v, ok := obj.GetString("email")
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(v, "@example.com"), "got %q", v)
	assert.Contains(t, v, "1700000001", "nonce guarantees uniqueness")
	assert.Equal(t, strings.ToLower(v), v)
}

func TestPhoneShapeUsesInjectedDigit(t *testing.T) {
	obj := parse(t, `{"phone":"0611111111"}`)

	g := fixedDigit(NewGenerator(nil))
	g.Populate(obj, apicontext.DomainUser, 1234, nil)

	v, _ := obj.GetString("phone")
	require.Len(t, v, 10)
	assert.True(t, strings.HasPrefix(v, "06"), "got %q", v)
	assert.Equal(t, "06"+"00001234", v)
}

func TestIdentifierAndPriceRules(t *testing.T) {
	obj := parse(t, `{"order_ref":"r1","amount":5}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainOrder, 500, nil)

	ref, _ := obj.GetString("order_ref")
	assert.Equal(t, "order_ref_500_509", ref) // abs(500+len("order_ref")) % 1000

	price, ok := obj.Get("amount").(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, price, 10.0)
	assert.Less(t, price, 1010.0)
}

func TestCompanyTypeAndName(t *testing.T) {
	obj := parse(t, `{"name":"Old Co","type":"old","company_website":"https://old.example","linkedin_url":"https://linkedin.com/company/old"}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainCompany, 99, nil)

	name, _ := obj.GetString("name")
	assert.NotEqual(t, "Old Co", name)
	assert.True(t, strings.HasSuffix(name, " 103"), "unique suffix is the index; got %q", name)

	typ, _ := obj.GetString("type")
	assert.Contains(t, DefaultPools().CompanyTypes, typ)

	site, _ := obj.GetString("company_website")
	assert.True(t, strings.HasPrefix(site, "https://"), "got %q", site)
	assert.Contains(t, site, "-99")

	li, _ := obj.GetString("linkedin_url")
	assert.True(t, strings.HasPrefix(li, "https://linkedin.com/company/"), "got %q", li)
	assert.True(t, strings.HasSuffix(li, "-99"), "got %q", li)
}

func TestLongStringsGetFiller(t *testing.T) {
	obj := parse(t, `{"description":"this is a fairly long description of the item"}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainProduct, 7, nil)

	v, _ := obj.GetString("description")
	assert.NotContains(t, v, "fairly long description")
	assert.NotEmpty(t, v)
}

func TestShortStringsAndNonStringsUnchanged(t *testing.T) {
	obj := parse(t, `{"status":"ok","active":true,"count":2}`)

	g := NewGenerator(nil)
	g.Populate(obj, apicontext.DomainGeneric, 7, nil)

	s, _ := obj.GetString("status")
	assert.Equal(t, "ok", s)
	assert.Equal(t, true, obj.Get("active"))
	assert.Equal(t, float64(2), obj.Get("count"))
}
