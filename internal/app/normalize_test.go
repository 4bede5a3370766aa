package app_test

import (
	"testing"

	"staydeal/internal/app"
	"staydeal/internal/domain"
)

func TestNormalizeSettings_PartialDocumentFillsDefaults(t *testing.T) {
	doc := []byte(`{"pixDiscountEnabled": true, "pixDiscountPercentage": 7}`)

	ns := app.NormalizeSettings(doc)
	def := domain.DefaultSettings()

	if !ns.PixDiscountEnabled || ns.PixDiscountPercentage != 7 {
		t.Fatalf("explicit fields lost: %+v", ns)
	}
	if ns.MaxDiscountPercentage != def.MaxDiscountPercentage {
		t.Fatalf("absent field not defaulted: %v", ns.MaxDiscountPercentage)
	}
	if len(ns.ExtendedStayRules) != len(def.ExtendedStayRules) {
		t.Fatalf("absent tier list not defaulted")
	}
	if ns.BookNowTimeLimit != def.BookNowTimeLimit {
		t.Fatalf("absent int not defaulted")
	}
}

func TestNormalizeSettings_LegacyAliasesAndStringNumbers(t *testing.T) {
	doc := []byte(`{
		"pix_discount_enabled": "true",
		"pix_discount_percentage": "8,5",
		"max_discount_percentage": 20,
		"extended_stay_rules": [{"minDays": 10, "discountPercentage": "6"}]
	}`)

	ns := app.NormalizeSettings(doc)
	if !ns.PixDiscountEnabled {
		t.Fatalf("legacy bool alias not read")
	}
	if ns.PixDiscountPercentage != 8.5 {
		t.Fatalf("comma decimal not coerced: %v", ns.PixDiscountPercentage)
	}
	if ns.MaxDiscountPercentage != 20 {
		t.Fatalf("legacy alias not read: %v", ns.MaxDiscountPercentage)
	}
	if len(ns.ExtendedStayRules) != 1 || ns.ExtendedStayRules[0].MinDays != 10 || ns.ExtendedStayRules[0].DiscountPercentage != 6 {
		t.Fatalf("rule list not parsed: %+v", ns.ExtendedStayRules)
	}
}

func TestNormalizeSettings_GarbageYieldsDefaults(t *testing.T) {
	for _, doc := range [][]byte{nil, []byte(""), []byte("not json"), []byte("null")} {
		ns := app.NormalizeSettings(doc)
		def := domain.DefaultSettings()
		if ns.MaxDiscountPercentage != def.MaxDiscountPercentage || ns.PixDiscountPercentage != def.PixDiscountPercentage {
			t.Fatalf("garbage doc %q did not yield defaults", doc)
		}
	}
}

func TestNormalizeSettings_EmptyRuleListStaysEmpty(t *testing.T) {
	// An explicit empty list means "category disabled", not "use defaults".
	doc := []byte(`{"extendedStayRules": []}`)
	ns := app.NormalizeSettings(doc)
	if len(ns.ExtendedStayRules) != 0 {
		t.Fatalf("explicit empty list overridden: %+v", ns.ExtendedStayRules)
	}
}
