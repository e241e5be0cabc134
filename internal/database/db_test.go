package database

import (
	"testing"
	"time"
)

func TestPoolDefaults(t *testing.T) {
	t.Parallel()
	p := Pool{}.withDefaults()
	if p.MaxOpen != 50 || p.MaxIdle != 10 || p.ConnMaxLifetime != 15*time.Minute {
		t.Errorf("zero pool defaults: got %+v", p)
	}

	set := Pool{MaxOpen: 5, MaxIdle: 2, ConnMaxLifetime: time.Minute}.withDefaults()
	if set.MaxOpen != 5 || set.MaxIdle != 2 || set.ConnMaxLifetime != time.Minute {
		t.Errorf("explicit pool overridden: got %+v", set)
	}

	neg := Pool{MaxOpen: -1, MaxIdle: -1, ConnMaxLifetime: -time.Second}.withDefaults()
	if neg.MaxOpen != 50 || neg.MaxIdle != 10 || neg.ConnMaxLifetime != 15*time.Minute {
		t.Errorf("negative pool not defaulted: got %+v", neg)
	}
}
