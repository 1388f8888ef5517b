// Package datadog caches timeboards, screenboards and monitors from the
// Datadog v1 API and searches them.
package datadog

import (
	"fmt"
	"strconv"
	"time"
)

// TimeBoard is a cached timeboard. Timeboard ids are strings.
type TimeBoard struct {
	ID          string
	Title       string
	Description string
	URL         string
	Modified    time.Time
}

// ScreenBoard is a cached screenboard. Screenboard ids are integers.
type ScreenBoard struct {
	ID          int64
	Title       string
	Description string
	URL         string
	Modified    time.Time
}

// Monitor is a cached monitor with its tags.
type Monitor struct {
	ID       int64
	Name     string
	URL      string
	Tags     []string
	Modified time.Time
}

// Dashboard is the shared projection of timeboards and screenboards.
type Dashboard struct {
	Title       string
	Description string
	URL         string
	Modified    time.Time
}

// URLs builds the web links for cached entities.
type URLs struct {
	Subdomain string
}

func (u URLs) base() string {
	return fmt.Sprintf("https://%s.datadoghq.com", u.Subdomain)
}

func (u URLs) TimeBoard(id string) string {
	return u.base() + "/dash/" + id
}

func (u URLs) ScreenBoard(id int64) string {
	return u.base() + "/screen/" + strconv.FormatInt(id, 10)
}

func (u URLs) Monitor(id int64) string {
	return u.base() + "/monitors/" + strconv.FormatInt(id, 10)
}
