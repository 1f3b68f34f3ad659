package decode

import "testing"

func TestDecode_ContextualRouting(t *testing.T) {
	// The same code means different things under different field names.
	tests := []struct {
		field    string
		value    string
		expected string
	}{
		{"recording_label", "001", "Yes"},
		{"roof_materials_label", "001", "Concrete"},
		{"premise_type_label", "001", "Office building"},
		{"grade_label", "003", "Grade II"},
		{"shop_lifting_label", "1", "Yes"},
		{"shop_lifting_label", "2", "No"},
		{"do_you_use_armed_guards_during_transit_label", "002", "No"},
		{"claim_history_label", "001", "No claim within 3 years"},
		{"the_nearest_police_station_label", "002", "Within 2-5 Kms"},
		{"nature_of_business_label", "34", "Pawnbrokers"},
		{"industry_id_label", "6", "Money Services"},
	}

	for _, tt := range tests {
		if got := Decode(tt.field, tt.value); got != tt.expected {
			t.Errorf("Decode(%q, %q) = %q, want %q", tt.field, tt.value, got, tt.expected)
		}
	}
}

func TestDecode_Passthrough(t *testing.T) {
	// Passthrough fields keep their raw value even when it looks like a code.
	if got := Decode("safe_weight_label", "001"); got != "001" {
		t.Errorf("expected raw value, got %q", got)
	}
	if got := Decode("maximum_cash_in_premises_label", "500000"); got != "500000" {
		t.Errorf("expected raw value, got %q", got)
	}
}

func TestDecode_UnknownClassificationCode(t *testing.T) {
	if got := Decode("nature_of_business_label", "99"); got != "Unknown (99)" {
		t.Errorf("got %q, want Unknown (99)", got)
	}
	if got := Decode("industry_id_label", "42"); got != "Unknown (42)" {
		t.Errorf("got %q, want Unknown (42)", got)
	}
	// Non-numeric values fall through raw.
	if got := Decode("nature_of_business_label", "abc"); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
}

func TestDecode_UnmappedField(t *testing.T) {
	if got := Decode("some_new_field_label", "hello"); got != "hello" {
		t.Errorf("unmapped field should return raw value, got %q", got)
	}
	if got := Decode("recording_label", "   "); got != "" {
		t.Errorf("blank value should decode to empty string, got %q", got)
	}
}

func TestDecodeValue_NumericJSON(t *testing.T) {
	// JSON numbers arrive as float64 and must still hit the code maps.
	if got := DecodeValue("shop_lifting_label", float64(1)); got != "Yes" {
		t.Errorf("got %q, want Yes", got)
	}
	if got := DecodeValue("recording_label", true); got != "Yes" {
		t.Errorf("got %q, want Yes", got)
	}
	if got := DecodeValue("recording_label", nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDecodeRecord_Nested(t *testing.T) {
	raw := map[string]any{
		"grade_label":     "004",
		"certified_label": "001",
		"safes": []any{
			map[string]any{"grade_label": "002", "safe_brand_name_label": "Chubb"},
		},
	}

	decoded, ok := DecodeRecord(raw).(map[string]any)
	if !ok {
		t.Fatalf("expected map result")
	}
	if decoded["grade_label"] != "Grade III" {
		t.Errorf("grade_label = %v, want Grade III", decoded["grade_label"])
	}
	safes, ok := decoded["safes"].([]any)
	if !ok || len(safes) != 1 {
		t.Fatalf("expected one nested safe entry")
	}
	inner := safes[0].(map[string]any)
	if inner["grade_label"] != "Grade I" {
		t.Errorf("nested grade_label = %v, want Grade I", inner["grade_label"])
	}
	if inner["safe_brand_name_label"] != "Chubb" {
		t.Errorf("brand passthrough = %v, want Chubb", inner["safe_brand_name_label"])
	}
}

func TestDecodeFields_Flat(t *testing.T) {
	fields := map[string]any{
		"do_you_have_alarm_label": "001",
		"connection_type_label":   "003",
	}
	decoded := DecodeFields(fields)
	if decoded["do_you_have_alarm_label"] != "Yes" {
		t.Errorf("alarm = %q", decoded["do_you_have_alarm_label"])
	}
	if decoded["connection_type_label"] != "Police" {
		t.Errorf("connection = %q", decoded["connection_type_label"])
	}
}
