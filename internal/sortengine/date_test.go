package sortengine

import "testing"

func TestDateFromDirnameTakesLastMatch(t *testing.T) {
	got, ok := dateFromDirname("/archive/2018/vacation-2021/img0001.jpg")
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.Year() != 2021 {
		t.Errorf("expected last match 2021, got %d", got.Year())
	}
}

func TestDateFromDirnameNoMatch(t *testing.T) {
	_, ok := dateFromDirname("/archive/vacation/img0001.jpg")
	if ok {
		t.Fatalf("expected no match")
	}
}
