package service

import (
	"errors"
	"fmt"
	"net"
)

// resolveTarget 把扫描目标固定成一个 IP 字面量
// 本身就是字面量（v4/v6）的原样接受，否则做一次解析，优先取 IPv4 地址
func resolveTarget(target string) (string, error) {
	if target == "" {
		return "", errors.New("target address is required")
	}
	if ip := net.ParseIP(target); ip != nil {
		return ip.String(), nil
	}
	ips, err := net.LookupIP(target)
	if err != nil {
		return "", fmt.Errorf("resolve target %s: %w", target, err)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	if len(ips) > 0 {
		return ips[0].String(), nil
	}
	return "", fmt.Errorf("no addresses found for %s", target)
}
