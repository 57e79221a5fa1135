package dnevnik

import (
	"context"
	"dnevnik-client/internal/components/chrono"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// RawPage is an unparsed page as served by the portal.
type RawPage struct {
	Name     string
	Contents string
}

type rawRequest struct {
	name     string
	endpoint string
	params   map[string]string
}

// RawPages downloads every page kind the parsers understand, the result is
// meant to be saved as test fixtures. Period selects the diary week.
func (s Scraper) RawPages(ctx context.Context, period time.Time) ([]RawPage, error) {
	ctx, span := tracer.Start(ctx, "scraper:RawPages")
	defer span.End()

	session := s.client.session
	diary, err := url.JoinPath(
		s.client.opts.WeekDiaryURL,
		session.ProfileID,
		session.SchoolID,
		strconv.Itoa(period.Year()),
		chrono.FormatPeriod(period),
	)
	if err != nil {
		return nil, err
	}
	birthdays, err := s.client.schoolsEndpoint("birthdays.aspx")
	if err != nil {
		return nil, err
	}
	school, err := s.client.schoolsEndpoint("school.aspx")
	if err != nil {
		return nil, err
	}
	class, err := s.client.schoolsEndpoint("class.aspx")
	if err != nil {
		return nil, err
	}

	requests := []rawRequest{
		{name: "diary", endpoint: diary},
		{name: "bday_calendar", endpoint: birthdays, params: map[string]string{"school": session.SchoolID, "view": "calendar"}},
		{name: "userfeed", endpoint: s.client.opts.FeedURL},
		{name: "school", endpoint: school, params: map[string]string{"school": session.SchoolID, "view": "members", "group": "all"}},
		{name: "bday_near", endpoint: birthdays, params: map[string]string{"school": session.SchoolID, "group": "all"}},
		{name: "class_users", endpoint: class, params: map[string]string{"class": session.GroupID, "view": "members"}},
	}

	pages := make([]RawPage, 0, len(requests))
	for _, req := range requests {
		contents, err := s.client.get(ctx, req.endpoint, req.params)
		if err != nil {
			return pages, fmt.Errorf("download %s: %w", req.name, err)
		}
		pages = append(pages, RawPage{Name: req.name, Contents: contents})
	}
	return pages, nil
}
