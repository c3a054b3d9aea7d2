package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusAvailable, StatusCollected, true},
		{StatusAvailable, StatusArchived, true},
		{StatusCollected, StatusAvailable, true},
		{StatusCollected, StatusArchived, true},
		// archived 为终态
		{StatusArchived, StatusAvailable, false},
		{StatusArchived, StatusCollected, false},
		{StatusArchived, StatusArchived, true},
		// 非法状态
		{"unknown", StatusAvailable, false},
		{StatusAvailable, "unknown", false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, 期望 %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusAvailable, StatusCollected, StatusArchived} {
		if !IsValidStatus(s) {
			t.Errorf("%q 应为合法状态", s)
		}
	}
	if IsValidStatus("deleted") {
		t.Error("deleted 不应为合法状态")
	}
}
