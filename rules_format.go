package valicomb

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

func init() {
	registerBuiltin("email", ruleEmail)
	registerBuiltin("emailDNS", ruleEmailDNS)
	registerBuiltin("url", ruleURL)
	registerBuiltin("urlActive", ruleURLActive)
	registerBuiltin("ip", ruleIP)
	registerBuiltin("ipv4", ruleIPv4)
	registerBuiltin("ipv6", ruleIPv6)
	registerBuiltin("alpha", ruleAlpha)
	registerBuiltin("alphaNum", ruleAlphaNum)
	registerBuiltin("slug", ruleSlug)
	registerBuiltin("ascii", ruleASCII)
	registerBuiltin("regex", ruleRegex)
	registerBuiltin("date", ruleDate)
	registerBuiltin("dateFormat", ruleDateFormat)
	registerBuiltin("dateBefore", ruleDateBefore)
	registerBuiltin("dateAfter", ruleDateAfter)
	registerBuiltin("creditCard", ruleCreditCard)
	registerBuiltin("uuid", ruleUUID)
	registerBuiltin("phone", rulePhone)
	registerBuiltin("instanceOf", ruleInstanceOf)
}

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphaRe    = regexp.MustCompile(`^[\pL\pM]+$`)
	alphaNumRe = regexp.MustCompile(`^[\pL\pM\pN]+$`)
	slugRe     = regexp.MustCompile(`(?i)^[-a-z0-9_]+$`)
)

// dateLayouts are tried in order by the date rule. The list covers the wire
// formats binder-produced data actually carries: RFC 3339, date-only and the
// common space-separated datetime.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC1123,
}

func ruleEmail(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	return ok && emailRe.MatchString(s), "", nil
}

// ruleEmailDNS additionally requires the domain to publish MX records. Network
// access makes this rule slow and environment-dependent; prefer email unless
// deliverability matters.
func ruleEmailDNS(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok || !emailRe.MatchString(s) {
		return false, "", nil
	}
	domain := s[strings.LastIndexByte(s, '@')+1:]
	records, err := net.LookupMX(domain)
	return err == nil && len(records) > 0, "", nil
}

func ruleURL(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "ftp") && u.Host != "", "", nil
}

// ruleURLActive requires the URL's host to resolve and answer an HTTP HEAD
// request with a non-5xx status.
func ruleURLActive(field string, value any, params []any, data map[string]any) (bool, string, error) {
	ok, _, err := ruleURL(field, value, params, data)
	if err != nil || !ok {
		return false, "", err
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, reqErr := client.Head(value.(string))
	if reqErr != nil {
		return false, "", nil
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError, "", nil
}

func ruleIP(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	return ok && net.ParseIP(s) != nil, "", nil
}

func ruleIPv4(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Contains(s, "."), "", nil
}

func ruleIPv6(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":"), "", nil
}

func ruleAlpha(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	return ok && alphaRe.MatchString(s), "", nil
}

func ruleAlphaNum(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	return ok && alphaNumRe.MatchString(s), "", nil
}

func ruleSlug(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	return ok && slugRe.MatchString(s), "", nil
}

func ruleASCII(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	for i := range len(s) {
		if s[i] > 127 {
			return false, "", nil
		}
	}
	return true, "", nil
}

// ruleRegex matches the value against the RE2 pattern in the first parameter.
// A pattern that does not compile is a configuration error, not a data
// failure.
func ruleRegex(field string, value any, params []any, data map[string]any) (bool, string, error) {
	pattern, err := paramString("regex", params, 0)
	if err != nil {
		return false, "", err
	}
	re, compileErr := regexp.Compile(pattern)
	if compileErr != nil {
		return false, "", fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, compileErr)
	}
	s, ok := value.(string)
	return ok && re.MatchString(s), "", nil
}

// parseDate accepts time.Time values as-is and tries the known layouts for
// strings.
func parseDate(value any) (time.Time, bool) {
	switch t := value.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func ruleDate(field string, value any, params []any, data map[string]any) (bool, string, error) {
	_, ok := parseDate(value)
	return ok, "", nil
}

// ruleDateFormat requires the string to parse with exactly the Go reference
// layout given as the first parameter.
func ruleDateFormat(field string, value any, params []any, data map[string]any) (bool, string, error) {
	layout, err := paramString("dateFormat", params, 0)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	parsed, parseErr := time.Parse(layout, s)
	// Round-trip to reject inputs the layout merely tolerates (e.g. "2006-1-2"
	// against "2006-01-02").
	return parseErr == nil && parsed.Format(layout) == s, "", nil
}

func ruleDateBefore(field string, value any, params []any, data map[string]any) (bool, string, error) {
	return dateCompare("dateBefore", value, params, func(v, bound time.Time) bool { return v.Before(bound) })
}

func ruleDateAfter(field string, value any, params []any, data map[string]any) (bool, string, error) {
	return dateCompare("dateAfter", value, params, func(v, bound time.Time) bool { return v.After(bound) })
}

func dateCompare(ruleName string, value any, params []any, cmp func(v, bound time.Time) bool) (bool, string, error) {
	p, err := paramRequired(ruleName, params, 0)
	if err != nil {
		return false, "", err
	}
	bound, ok := parseDate(p)
	if !ok {
		return false, "", fmt.Errorf("%w: %s parameter must be a date", ErrInvalidParameter, ruleName)
	}
	v, ok := parseDate(value)
	return ok && cmp(v, bound), "", nil
}

var cardPrefixRes = map[string]*regexp.Regexp{
	"visa":       regexp.MustCompile(`^4\d{12}(\d{3})?$`),
	"mastercard": regexp.MustCompile(`^(5[1-5]\d{2}|222[1-9]|22[3-9]\d|2[3-6]\d{2}|27[01]\d|2720)\d{12}$`),
	"amex":       regexp.MustCompile(`^3[47]\d{13}$`),
	"dinersclub": regexp.MustCompile(`^3(0[0-5]|[68]\d)\d{11}$`),
	"discover":   regexp.MustCompile(`^6(011|5\d{2})\d{12}$`),
}

// ruleCreditCard runs a Luhn check. An optional first parameter narrows the
// accepted networks, either one name or a list.
func ruleCreditCard(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok || !luhnValid(s) {
		return false, "", nil
	}
	if len(params) == 0 {
		return true, "", nil
	}
	types, err := paramFields("creditCard", params, 0)
	if err != nil {
		return false, "", err
	}
	for _, name := range types {
		re, known := cardPrefixRes[strings.ToLower(name)]
		if !known {
			return false, "", fmt.Errorf("%w: unknown card type %q", ErrInvalidParameter, name)
		}
		if re.MatchString(s) {
			return true, "", nil
		}
	}
	return false, "", nil
}

func luhnValid(number string) bool {
	if len(number) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func ruleUUID(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	_, err := uuid.Parse(s)
	return err == nil, "", nil
}

// rulePhone validates the value as a dialable phone number. An optional first
// parameter supplies the default region for national-format input; without it
// the number must carry a country code.
func rulePhone(field string, value any, params []any, data map[string]any) (bool, string, error) {
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	region := ""
	if len(params) > 0 {
		var err error
		if region, err = paramString("phone", params, 0); err != nil {
			return false, "", err
		}
		region = strings.ToUpper(region)
	}
	parsed, err := phonenumbers.Parse(s, region)
	if err != nil {
		return false, "", nil
	}
	return phonenumbers.IsValidNumber(parsed), "", nil
}

// ruleInstanceOf passes when the value's dynamic type matches the parameter:
// either a type-name string (e.g. "time.Time") or a sample value of the
// wanted type.
func ruleInstanceOf(field string, value any, params []any, data map[string]any) (bool, string, error) {
	p, err := paramRequired("instanceOf", params, 0)
	if err != nil {
		return false, "", err
	}
	if value == nil {
		return false, "", nil
	}
	got := reflect.TypeOf(value)
	if name, ok := p.(string); ok {
		return got.String() == name || got.Name() == name, "", nil
	}
	return got == reflect.TypeOf(p), "", nil
}
