// Package apicontext infers the business domain of a captured API request.
// The guess drives realistic filler data selection only; it never changes
// what gets tested.
package apicontext

import (
	"net/url"
	"strings"

	"github.com/apiprobe/apiprobe/pkg/curlparse"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
)

// Domain is a coarse business-domain label.
type Domain string

const (
	DomainAuth          Domain = "auth"
	DomainUser          Domain = "user"
	DomainCompany       Domain = "company"
	DomainProduct       Domain = "product"
	DomainOrder         Domain = "order"
	DomainContent       Domain = "content"
	DomainFinance       Domain = "finance"
	DomainCommunication Domain = "communication"
	DomainAnalytics     Domain = "analytics"
	DomainAdmin         Domain = "admin"
	DomainIoT           Domain = "iot"
	DomainGeneric       Domain = "generic"
)

// Context is the classification outcome. Computed once per captured
// request and immutable afterwards.
type Context struct {
	Domain        Domain   `json:"domain"`
	Confidence    int      `json:"confidence"`
	Endpoint      string   `json:"endpoint"`
	Resource      string   `json:"resource"`
	PayloadFields []string `json:"payload_fields,omitempty"`
	Description   string   `json:"description"`
}

// domainKeywords is scored in declaration order; ties keep the earlier
// domain.
var domainKeywords = []struct {
	domain   Domain
	keywords []string
}{
	{DomainAuth, []string{"login", "logout", "auth", "token", "signin", "signup", "register", "password", "oauth", "session"}},
	{DomainUser, []string{"user", "profile", "account", "member", "customer", "contact"}},
	{DomainCompany, []string{"company", "companies", "organization", "org", "business", "enterprise", "tenant"}},
	{DomainProduct, []string{"product", "item", "catalog", "sku", "inventory", "stock"}},
	{DomainOrder, []string{"order", "cart", "checkout", "purchase", "shipment", "basket", "delivery"}},
	{DomainContent, []string{"content", "post", "article", "comment", "media", "blog", "page", "upload"}},
	{DomainFinance, []string{"payment", "invoice", "billing", "transaction", "refund", "wallet", "price"}},
	{DomainCommunication, []string{"message", "notification", "email", "sms", "chat", "mail", "inbox"}},
	{DomainAnalytics, []string{"analytics", "report", "stats", "metric", "dashboard", "event", "tracking"}},
	{DomainAdmin, []string{"admin", "config", "setting", "permission", "role", "audit"}},
	{DomainIoT, []string{"device", "sensor", "telemetry", "firmware", "gateway", "reading"}},
}

var descriptions = map[Domain]string{
	DomainAuth:          "Authentication and session management API",
	DomainUser:          "User and profile management API",
	DomainCompany:       "Company and organization management API",
	DomainProduct:       "Product catalog and inventory API",
	DomainOrder:         "Order and checkout processing API",
	DomainContent:       "Content publishing and media API",
	DomainFinance:       "Payment and billing API",
	DomainCommunication: "Messaging and notification API",
	DomainAnalytics:     "Analytics and reporting API",
	DomainAdmin:         "Administration and configuration API",
	DomainIoT:           "Device and telemetry API",
	DomainGeneric:       "General-purpose business API",
}

// Classify inspects the URL shape and JSON body field names of req.
// Absent or non-JSON bodies leave payload data empty; Classify never
// fails.
func Classify(req *curlparse.Request) *Context {
	segments, query := splitURL(req.URL)

	domain := DomainGeneric
	best := 0
	for _, entry := range domainKeywords {
		score := 0
		for _, kw := range entry.keywords {
			if segmentsContain(segments, kw) || strings.Contains(query, kw) {
				score++
			}
		}
		if score > best {
			best = score
			domain = entry.domain
		}
	}

	ctx := &Context{
		Domain:     domain,
		Confidence: best,
	}
	if n := len(segments); n > 0 {
		ctx.Endpoint = segments[n-1]
		if n > 1 {
			ctx.Resource = segments[n-2]
		}
	}

	if req.HasBody {
		if obj, err := jsonutil.ParseObject([]byte(req.Body)); err == nil {
			ctx.PayloadFields = obj.Keys()
			applyFieldOverrides(ctx)
		}
	}

	ctx.Description = descriptions[ctx.Domain]
	if ctx.Description == "" {
		ctx.Description = descriptions[DomainGeneric]
	}
	return ctx
}

// fieldSignals computes the boolean field-name presence signals over the
// top-level payload keys.
type fieldSignals struct {
	email, password, name, address, phone bool
	price, date, id, status, typ         bool
}

func signalsFor(fields []string) fieldSignals {
	var s fieldSignals
	for _, f := range fields {
		k := strings.ToLower(f)
		s.email = s.email || strings.Contains(k, "email")
		s.password = s.password || strings.Contains(k, "password")
		s.name = s.name || strings.Contains(k, "name")
		s.address = s.address || strings.Contains(k, "address")
		s.phone = s.phone || strings.Contains(k, "phone")
		s.price = s.price || strings.Contains(k, "price") || strings.Contains(k, "amount")
		s.date = s.date || strings.Contains(k, "date") || strings.Contains(k, "time")
		s.id = s.id || strings.Contains(k, "id")
		s.status = s.status || strings.Contains(k, "status")
		s.typ = s.typ || strings.Contains(k, "type")
	}
	return s
}

// applyFieldOverrides applies the payload-shape override rules in order;
// the first matching rule wins and later rules are not checked.
func applyFieldOverrides(ctx *Context) {
	s := signalsFor(ctx.PayloadFields)
	switch {
	case s.email && s.password:
		ctx.Domain = DomainAuth
		ctx.Confidence += 2
	case s.price && s.name:
		ctx.Domain = DomainProduct
		ctx.Confidence += 2
	case s.address && s.phone:
		ctx.Domain = DomainUser
		ctx.Confidence += 2
	}
}

func splitURL(raw string) (segments []string, query string) {
	u, err := url.Parse(strings.ToLower(raw))
	if err != nil {
		return nil, ""
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments, u.RawQuery
}

func segmentsContain(segments []string, kw string) bool {
	for _, seg := range segments {
		if strings.Contains(seg, kw) {
			return true
		}
	}
	return false
}
