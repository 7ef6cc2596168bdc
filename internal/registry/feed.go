// Package registry pulls newly registered investment advisers from the SEC's
// monthly FOIA compilation.
package registry

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"surge/internal/enrich/fetch"
)

// DefaultBaseURL is the SEC's published location for the monthly adviser
// compilation archives.
const DefaultBaseURL = "https://www.sec.gov/files/investment/data/information-about-registered-investment-advisers-exempt-reporting-advisers/"

const (
	downloadTimeout = 5 * time.Minute
	monthsBack      = 4
	maxArchiveBytes = 512 << 20
)

// ErrNoSnapshot means none of the candidate archive URLs yielded a
// compilation. The SEC publishes under a date-stamped filename that drifts by
// a day, so absence is usually a transient publishing gap or IP blocking.
var ErrNoSnapshot = errors.New("registry: no compilation snapshot available")

// Feed downloads and parses adviser compilations.
type Feed struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
	logger  *slog.Logger
}

// NewFeed builds a Feed against baseURL; pass DefaultBaseURL outside tests.
func NewFeed(baseURL string, logger *slog.Logger) *Feed {
	return &Feed{
		client:  &http.Client{Timeout: downloadTimeout},
		baseURL: baseURL,
		now:     time.Now,
		logger:  logger,
	}
}

// Recent returns the firms whose registration became effective inside
// [start, end], newest first. The underlying compilation is monthly, so the
// snapshot may trail the requested window by a few weeks.
func (f *Feed) Recent(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	body, sourceURL, err := f.download(ctx)
	if err != nil {
		return nil, err
	}

	firms, total, err := parseArchive(body)
	if err != nil {
		return nil, fmt.Errorf("parse compilation %s: %w", sourceURL, err)
	}

	var snapshotDate time.Time
	for _, firm := range firms {
		if firm.Registered.After(snapshotDate) {
			snapshotDate = firm.Registered
		}
	}

	var matched []Firm
	for _, firm := range firms {
		if firm.Registered.IsZero() {
			continue
		}
		if firm.Registered.Before(start) || firm.Registered.After(end) {
			continue
		}
		matched = append(matched, firm)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Registered.After(matched[j].Registered)
	})

	f.logger.InfoContext(ctx, "registry snapshot parsed",
		"source", sourceURL,
		"total_records", total,
		"matched", len(matched),
	)

	return &Snapshot{
		Firms:        matched,
		TotalRecords: total,
		SnapshotDate: snapshotDate,
		SourceURL:    sourceURL,
	}, nil
}

// download tries each candidate archive URL in order. Wrong dates 404
// quickly; the first 200 wins. Lightweight probes (HEAD, Range) are blocked
// for cloud IPs, so each attempt is a full GET.
func (f *Feed) download(ctx context.Context) ([]byte, string, error) {
	for _, url := range f.candidateURLs() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("User-Agent", fetch.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			f.logger.Debug("compilation fetch failed", "url", url, "error", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			f.logger.Debug("compilation not available", "url", url, "status", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes))
		resp.Body.Close()
		if err != nil {
			f.logger.Debug("compilation read failed", "url", url, "error", err)
			continue
		}
		return body, url, nil
	}
	return nil, "", ErrNoSnapshot
}

// candidateURLs lists archives for the 1st and 2nd of each of the last few
// months, newest first. The publication day drifts between the two.
func (f *Feed) candidateURLs() []string {
	today := f.now()
	var urls []string
	for back := 0; back < monthsBack; back++ {
		month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -back, 0)
		for day := 1; day <= 2; day++ {
			stamp := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC).Format("010206")
			urls = append(urls, f.baseURL+"ia"+stamp+".zip")
		}
	}
	return urls
}

func parseArchive(body []byte) ([]Firm, int, error) {
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, 0, err
	}
	if len(archive.File) == 0 {
		return nil, 0, errors.New("empty archive")
	}

	entry, err := archive.File[0].Open()
	if err != nil {
		return nil, 0, err
	}
	defer entry.Close()

	return parseCompilation(entry)
}

// columnIndexes maps the compilation's header names to Firm fields. The
// numeric headers are Form ADV item numbers: 5A employees, 5C(1) clients,
// 5F(2)(c) regulatory assets under management.
type columnIndexes struct {
	company, crd, status, statusDate   int
	city, state, phone, website, legal int
	employees, clients, aum            int
}

func parseCompilation(r io.Reader) ([]Firm, int, error) {
	// The SEC exports latin-1, not UTF-8.
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	cols := columnIndexes{
		company: -1, crd: -1, status: -1, statusDate: -1,
		city: -1, state: -1, phone: -1, website: -1, legal: -1,
		employees: -1, clients: -1, aum: -1,
	}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Primary Business Name":
			cols.company = i
		case "Organization CRD#":
			cols.crd = i
		case "SEC Current Status":
			cols.status = i
		case "SEC Status Effective Date":
			cols.statusDate = i
		case "Main Office City":
			cols.city = i
		case "Main Office State":
			cols.state = i
		case "Main Office Telephone Number":
			cols.phone = i
		case "Website Address":
			cols.website = i
		case "Legal Name":
			cols.legal = i
		case "5A":
			cols.employees = i
		case "5C(1)":
			cols.clients = i
		case "5F(2)(c)":
			cols.aum = i
		}
	}
	if cols.crd == -1 || cols.statusDate == -1 {
		return nil, 0, errors.New("compilation missing required columns")
	}

	var firms []Firm
	total := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows happen in this export; skip rather than abort.
			continue
		}
		total++

		firms = append(firms, Firm{
			CRD:        parseInt(field(record, cols.crd)),
			Company:    field(record, cols.company),
			LegalName:  field(record, cols.legal),
			Status:     field(record, cols.status),
			City:       field(record, cols.city),
			State:      field(record, cols.state),
			Phone:      field(record, cols.phone),
			Website:    field(record, cols.website),
			Registered: parseDate(field(record, cols.statusDate)),
			Employees:  parseInt(field(record, cols.employees)),
			Clients:    parseInt(field(record, cols.clients)),
			AUM:        parseAmount(field(record, cols.aum)),
		})
	}
	return firms, total, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

var dateLayouts = []string{"01/02/2006", "2006-01-02", "1/2/2006"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// parseAmount cleans the AUM column: thousands separators and a trailing
// ".00" both appear in the export.
func parseAmount(s string) int64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".00")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
