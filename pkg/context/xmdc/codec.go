package xmdc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/baggage"
)

// =============================================================================
// 跨进程编解码
// =============================================================================

// HeaderPrefix 载体传输头前缀，完整头名为 HeaderPrefix + 小写 key。
const HeaderPrefix = "x-mdc-"

// keySep 分隔载体 key 与条目部分
const keySep = ";"

// HeaderName 返回 key 对应的传输头名称。
func HeaderName(key string) string {
	return HeaderPrefix + strings.ToLower(key)
}

// Encode 将载体编码为单个头值："<转义后的 key>;<W3C baggage>"。
//
// 条目名必须满足 W3C baggage 的 token 规则，值可以是任意字符串。
// 空白 key 返回 ErrBlankKey，条目不合法时返回包装 ErrMalformedCarrier 的错误。
func Encode(m MDC) (string, error) {
	if err := ValidateKey(m.key); err != nil {
		return "", err
	}
	members := make([]baggage.Member, 0, len(m.entries))
	for _, name := range m.Names() {
		if !isToken(name) {
			return "", fmt.Errorf("%w: entry %q", ErrMalformedCarrier, name)
		}
		mem, err := baggage.NewMemberRaw(name, m.entries[name])
		if err != nil {
			return "", fmt.Errorf("%w: entry %q: %w", ErrMalformedCarrier, name, err)
		}
		// NewMemberRaw 不校验名称，非法成员的 String() 为空
		if mem.String() == "" {
			return "", fmt.Errorf("%w: entry %q", ErrMalformedCarrier, name)
		}
		members = append(members, mem)
	}
	// 成员按名称排序输出，baggage.New 只用于长度校验
	if _, err := baggage.New(members...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCarrier, err)
	}
	parts := make([]string, len(members))
	for i, mem := range members {
		parts[i] = mem.String()
	}
	return url.PathEscape(m.key) + keySep + strings.Join(parts, ","), nil
}

// isToken 判断 s 是否满足 RFC 7230 token 规则。
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return false
		}
	}
	return true
}

// Decode 解析 Encode 的输出。
func Decode(s string) (MDC, error) {
	rawKey, rawBag, ok := strings.Cut(s, keySep)
	if !ok {
		return MDC{}, fmt.Errorf("%w: missing key separator", ErrMalformedCarrier)
	}
	key, err := url.PathUnescape(rawKey)
	if err != nil {
		return MDC{}, fmt.Errorf("%w: key: %w", ErrMalformedCarrier, err)
	}
	if err := ValidateKey(key); err != nil {
		return MDC{}, fmt.Errorf("%w: %w", ErrMalformedCarrier, err)
	}
	bag, err := baggage.Parse(rawBag)
	if err != nil {
		return MDC{}, fmt.Errorf("%w: %w", ErrMalformedCarrier, err)
	}
	members := bag.Members()
	entries := make(map[string]string, len(members))
	for _, mem := range members {
		entries[mem.Key()] = mem.Value()
	}
	return MDC{key: key, entries: cloneEntries(entries)}, nil
}

// Inject 把 ctx 中的所有载体编码后写入 headers。
//
// 编码失败的载体被跳过，所有失败汇总为一个错误返回；其余载体照常写入。
func Inject(ctx context.Context, headers map[string]string) error {
	if headers == nil {
		return nil
	}
	var errs []error
	for _, c := range Carriers(ctx) {
		v, err := Encode(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("carrier %q: %w", c.key, err))
			continue
		}
		headers[HeaderName(c.key)] = v
	}
	return errors.Join(errs...)
}

// DecodeFunc 解析单个头值，Decode 是默认实现。
type DecodeFunc func(string) (MDC, error)

// Extract 从 headers 中解析所有载体并写入 ctx，返回派生上下文。
//
// 头名匹配不区分大小写；无法解析的头被静默跳过。
// 多个头解析出相同 key 时，按头名字典序后者覆盖前者。
func Extract(ctx context.Context, headers map[string]string) context.Context {
	return ExtractFunc(ctx, headers, Decode)
}

// ExtractFunc 与 Extract 相同，但使用 decode 解析头值。decode 为 nil 时使用 Decode。
func ExtractFunc(ctx context.Context, headers map[string]string, decode DecodeFunc) context.Context {
	if decode == nil {
		decode = Decode
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		if hasHeaderPrefix(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	sort.Strings(names)

	carriers := make([]MDC, 0, len(names))
	for _, name := range names {
		m, err := decode(headers[name])
		if err != nil {
			continue
		}
		carriers = append(carriers, m)
	}
	return Put(ctx, carriers...)
}

func hasHeaderPrefix(name string) bool {
	return len(name) > len(HeaderPrefix) && strings.EqualFold(name[:len(HeaderPrefix)], HeaderPrefix)
}
