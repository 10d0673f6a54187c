package sheets

import (
	"errors"
	"fmt"
	"strings"

	"openday/internal/models"
)

type column int

const (
	colName column = iota
	colSurname
	colEmail
	colChallenge
	colTeam
	colTimestamp
	numColumns
)

// Header is the column order new sheets are created with.
var Header = []interface{}{"Name", "Surname", "Email", "ParticipatesInChallenge", "TeamName", "Timestamp"}

// Older sheets were created with Portuguese titles, so both are accepted.
var headerAliases = map[string]column{
	"name":                    colName,
	"nome":                    colName,
	"firstname":               colName,
	"surname":                 colSurname,
	"apelido":                 colSurname,
	"lastname":                colSurname,
	"email":                   colEmail,
	"participatesinchallenge": colChallenge,
	"participachallenge":      colChallenge,
	"challenge":               colChallenge,
	"teamname":                colTeam,
	"team":                    colTeam,
	"equipa":                  colTeam,
	"nomedaequipa":            colTeam,
	"timestamp":               colTimestamp,
	"datahora":                colTimestamp,
	"registeredat":            colTimestamp,
}

type layout struct {
	index [numColumns]int
	width int
}

func defaultLayout() layout {
	var l layout
	for i := range l.index {
		l.index[i] = i
	}
	l.width = int(numColumns)
	return l
}

// parseHeader maps header titles to columns. ok is false when the row carries no Email title.
func parseHeader(row []interface{}) (layout, bool) {
	var l layout
	for i := range l.index {
		l.index[i] = -1
	}
	for i := range row {
		key := headerKey(get(row, i))
		if key == "" {
			continue
		}
		col, known := headerAliases[key]
		if !known || l.index[col] >= 0 {
			continue
		}
		l.index[col] = i
		if i+1 > l.width {
			l.width = i + 1
		}
	}
	if l.index[colEmail] < 0 {
		return defaultLayout(), false
	}
	return l, true
}

func headerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func (l layout) cell(row []interface{}, col column) string {
	idx := l.index[col]
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(get(row, idx))
}

func (l layout) decode(row []interface{}) (models.Registration, bool) {
	email := l.cell(row, colEmail)
	if email == "" {
		return models.Registration{}, false
	}
	r := models.Registration{
		Name:         l.cell(row, colName),
		Surname:      l.cell(row, colSurname),
		Email:        email,
		Challenge:    models.ParseChallenge(l.cell(row, colChallenge)),
		TeamName:     l.cell(row, colTeam),
		RegisteredAt: models.ParseTimestamp(l.cell(row, colTimestamp)),
	}
	if !r.Challenge || r.TeamName == "" {
		r.TeamName = models.TeamPlaceholder
	}
	return r, true
}

// errNoChallengeColumns is returned when a challenge registration would be written
// to a sheet without ParticipatesInChallenge or TeamName columns.
var errNoChallengeColumns = errors.New("sheet has no challenge or team column")

// missing lists the columns the header does not carry.
func (l layout) missing() []column {
	var out []column
	for col := column(0); col < numColumns; col++ {
		if l.index[col] < 0 {
			out = append(out, col)
		}
	}
	return out
}

// encode lays the registration out in the sheet's own column order, on top of
// base so cells in columns the store does not own are kept.
func (l layout) encode(r models.Registration, base []interface{}) ([]interface{}, error) {
	if r.Challenge && (l.index[colChallenge] < 0 || l.index[colTeam] < 0) {
		return nil, errNoChallengeColumns
	}
	width := l.width
	if len(base) > width {
		width = len(base)
	}
	row := make([]interface{}, width)
	for i := range row {
		if i < len(base) && base[i] != nil {
			row[i] = base[i]
		} else {
			row[i] = ""
		}
	}
	set := func(col column, v string) {
		if idx := l.index[col]; idx >= 0 {
			row[idx] = v
		}
	}
	team := r.TeamName
	if !r.Challenge || team == "" {
		team = models.TeamPlaceholder
	}
	set(colName, r.Name)
	set(colSurname, r.Surname)
	set(colEmail, r.Email)
	set(colChallenge, models.FormatChallenge(r.Challenge))
	set(colTeam, team)
	set(colTimestamp, models.FormatTimestamp(r.RegisteredAt))
	return row, nil
}

// columnLetter converts a 1-based column number to its A1 letters.
func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

func a1(sheet, rng string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheet, "'", "''"), rng)
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
