package config

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

// flagBinder defers flag values until defaults, file and environment are applied.
type flagBinder struct {
	fs      *flag.FlagSet
	pending []func()
}

func (b *flagBinder) string(name, usage string, dst *string) {
	b.fs.Func(name, usage, func(v string) error {
		b.pending = append(b.pending, func() { *dst = v })
		return nil
	})
}

func (b *flagBinder) int(name, usage string, dst *int) {
	b.fs.Func(name, usage, func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("must be an integer")
		}
		b.pending = append(b.pending, func() { *dst = n })
		return nil
	})
}

func (b *flagBinder) duration(name, usage string, dst *time.Duration) {
	b.fs.Func(name, usage, func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("must be a duration like 1s or 5m")
		}
		b.pending = append(b.pending, func() { *dst = d })
		return nil
	})
}

func (b *flagBinder) bool(name, usage string, dst *bool) {
	b.fs.BoolFunc(name, usage, func(v string) error {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("must be true or false")
		}
		b.pending = append(b.pending, func() { *dst = on })
		return nil
	})
}

func (b *flagBinder) apply() {
	for _, fn := range b.pending {
		fn()
	}
}

// configPath returns the -config flag value, falling back to FIELDKEEPER_CONFIG.
func configPath(flagValue string, lookup LookupEnv) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := lookup(EnvPrefix + "CONFIG"); ok {
		return v
	}
	return ""
}
