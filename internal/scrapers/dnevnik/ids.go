package dnevnik

import "regexp"

var (
	groupIdPattern   = regexp.MustCompile(`https://schools\.dnevnik\.ru/class\.aspx\?class=(\d+)`)
	profileIdPattern = regexp.MustCompile(`"personId":"(\d+)"`)
)

func firstSubmatch(pattern *regexp.Regexp, what, page string) (string, error) {
	groups := pattern.FindStringSubmatch(page)
	if len(groups) < 2 {
		return "", &NotFoundError{What: what, Pattern: pattern.String()}
	}
	return groups[1], nil
}

// ExtractGroupID returns the id of the class the authenticated user belongs to.
// The first class link in the page wins, later ones are ignored.
func ExtractGroupID(page string) (string, error) {
	return firstSubmatch(groupIdPattern, "group id", page)
}

// ExtractProfileID returns the embedded "personId" of the authenticated user.
// The first occurrence wins.
func ExtractProfileID(page string) (string, error) {
	return firstSubmatch(profileIdPattern, "profile id", page)
}
