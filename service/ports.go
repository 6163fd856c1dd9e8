package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseError 描述端口表达式中一个无法解析的 token
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid port spec: %s", e.Reason)
	}
	return fmt.Sprintf("invalid port spec token %q: %s", e.Token, e.Reason)
}

// ParsePortSpec 解析端口表达式，返回升序、去重后的端口集合
// 支持单个端口 "22"、闭区间 "1-1024" 以及混合写法 "22,80,8000-8100"
func ParsePortSpec(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, &ParseError{Reason: "empty specification"}
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, &ParseError{Token: token, Reason: "empty token"}
		}
		if strings.Contains(token, "-") {
			bounds := strings.SplitN(token, "-", 2)
			low, perr := parsePortNumber(bounds[0])
			if perr != nil {
				perr.Token = token
				return nil, perr
			}
			high, perr := parsePortNumber(bounds[1])
			if perr != nil {
				perr.Token = token
				return nil, perr
			}
			if low > high {
				return nil, &ParseError{Token: token, Reason: "range start greater than end"}
			}
			for p := low; p <= high; p++ {
				seen[p] = struct{}{}
			}
		} else {
			p, perr := parsePortNumber(token)
			if perr != nil {
				perr.Token = token
				return nil, perr
			}
			seen[p] = struct{}{}
		}
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)

	out := make([]uint16, len(ports))
	for i, p := range ports {
		out[i] = uint16(p)
	}
	return out, nil
}

func parsePortNumber(s string) (int, *ParseError) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Reason: "not a number"}
	}
	if n < 1 || n > 65535 {
		return 0, &ParseError{Reason: "port out of range 1-65535"}
	}
	return n, nil
}
