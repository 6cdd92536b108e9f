package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
)

// parseAccount reads an account spec of the form uid:lowest_height:addr1,addr2.
func parseAccount(spec string) (service.AccountConfig, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 3)
	if len(parts) != 3 {
		return service.AccountConfig{}, fmt.Errorf("account %q: want uid:lowest_height:addresses", spec)
	}
	uid := strings.TrimSpace(parts[0])
	if uid == "" {
		return service.AccountConfig{}, fmt.Errorf("account %q: empty uid", spec)
	}

	var lowest uint64
	if h := strings.TrimSpace(parts[1]); h != "" {
		v, err := strconv.ParseUint(h, 10, 64)
		if err != nil {
			return service.AccountConfig{}, fmt.Errorf("account %q: lowest height: %w", spec, err)
		}
		lowest = v
	}

	var addresses []string
	for _, a := range strings.Split(parts[2], ",") {
		if a = strings.TrimSpace(a); a != "" {
			addresses = append(addresses, a)
		}
	}
	if len(addresses) == 0 {
		return service.AccountConfig{}, fmt.Errorf("account %q: no addresses", spec)
	}

	return service.AccountConfig{UID: uid, Addresses: addresses, LowestHeight: lowest}, nil
}

func parseAccounts(specs []string) ([]service.AccountConfig, error) {
	configs := make([]service.AccountConfig, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		cfg, err := parseAccount(spec)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[cfg.UID]; ok {
			return nil, fmt.Errorf("account %q listed twice", cfg.UID)
		}
		seen[cfg.UID] = struct{}{}
		configs = append(configs, cfg)
	}
	return configs, nil
}
