package session

import "testing"

func TestValidateName(t *testing.T) {
	cases := map[string]bool{
		"Alice":          true,
		"O'Brien-Smith":  true,
		"A B. C'-1":      true,
		"":                false,
		"this name is way too long to be a valid display name at all": false,
		"bad$char":       false,
		"emoji😀":         false,
	}
	for name, want := range cases {
		if got := ValidateName(name); got != want {
			t.Errorf("ValidateName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestValidatePollQuestion(t *testing.T) {
	if !ValidatePollQuestion("Proceed?") {
		t.Error("expected short question to be valid")
	}
	if ValidatePollQuestion("") {
		t.Error("expected empty question to be invalid")
	}
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	if ValidatePollQuestion(string(long)) {
		t.Error("expected 201-char question to be invalid")
	}
}

func TestValidateConfigString(t *testing.T) {
	if !ValidateConfigString("") {
		t.Error("empty string should be valid (unset)")
	}
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if ValidateConfigString(string(long)) {
		t.Error("expected 101-char topic to be invalid")
	}
}

func TestValidateRoomCode(t *testing.T) {
	if !ValidateRoomCode("ABCD") {
		t.Error("expected 4-char code to be valid")
	}
	if ValidateRoomCode("ABC") || ValidateRoomCode("ABCDE") {
		t.Error("expected non-4-char codes to be invalid")
	}
}
