package redis

import "testing"

func TestListQueue_Key(t *testing.T) {
	cases := []struct {
		prefix, queue, want string
	}{
		{"queue", "stock-updates", "queue:stock-updates"},
		{"", "stock-updates", "stock-updates"},
		{"shop:prod", "image-processing", "shop:prod:image-processing"},
	}
	for _, tc := range cases {
		q := NewListQueue(nil, tc.prefix)
		if got := q.key(tc.queue); got != tc.want {
			t.Errorf("key(%q, %q) = %q, want %q", tc.prefix, tc.queue, got, tc.want)
		}
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := Config{Host: "localhost", Port: "6379"}
	if got := cfg.Addr(); got != "localhost:6379" {
		t.Fatalf("Addr() = %q", got)
	}
}
