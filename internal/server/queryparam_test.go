package server

import "testing"

func TestParseQuery(t *testing.T) {
	got := parseQuery("path=2020%2Fa.jpg&note=hello+world")
	if got["path"] != "2020/a.jpg" {
		t.Errorf("got %q", got["path"])
	}
	if got["note"] != "hello world" {
		t.Errorf("got %q", got["note"])
	}
}

func TestURLDecodeMalformedPercent(t *testing.T) {
	got := urldecode("100%-off")
	if got != "100%-off" {
		t.Errorf("expected malformed %%XX passed through literally, got %q", got)
	}
}
