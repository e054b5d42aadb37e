package svn

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/models"
)

// svn log --xml document shape.
type xmlLog struct {
	XMLName xml.Name      `xml:"log"`
	Entries []xmlLogEntry `xml:"logentry"`
}

type xmlLogEntry struct {
	Revision int64  `xml:"revision,attr"`
	Author   string `xml:"author"`
	Date     string `xml:"date"`
	Message  string `xml:"msg"`
}

// ParseLog parses svn log XML into commit records. Structural validation is
// fatal to the run: the first malformed entry aborts parsing, no records are
// partially accepted. Non-commit entries are not expected here; svn only
// emits logentry elements for real revisions.
func ParseLog(raw []byte) ([]*models.Commit, error) {
	var doc xmlLog
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewValidationError("malformed svn log document", err).WithStage("parse")
	}

	commits := make([]*models.Commit, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		c, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}

	return commits, nil
}

func parseEntry(e xmlLogEntry) (*models.Commit, error) {
	if e.Revision <= 0 {
		return nil, errors.NewRevisionValidationError(e.Revision, "revision", "must be positive").WithStage("parse")
	}
	if strings.TrimSpace(e.Author) == "" {
		return nil, errors.NewRevisionValidationError(e.Revision, "author", "must not be empty").WithStage("parse")
	}
	if e.Date == "" {
		return nil, errors.NewRevisionValidationError(e.Revision, "date", "is missing").WithStage("parse")
	}

	// svn emits dates like 2024-03-01T10:00:00.123456Z.
	date, err := time.Parse(time.RFC3339Nano, e.Date)
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("invalid commit record r%d: malformed date %q", e.Revision, e.Date), err).WithStage("parse")
	}

	return &models.Commit{
		Revision: e.Revision,
		Author:   e.Author,
		Date:     date,
		Message:  e.Message,
	}, nil
}
