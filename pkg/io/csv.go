package io

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Column names of the CSV tables read by [ImportCSV].
const (
	DefaultArea = "DEFAULT"

	ColumnArea     = "Area"
	ColumnColour   = "Colour"
	ColumnShape    = "Shape"
	ColumnFrom     = "From"
	ColumnTo       = "To"
	ColumnGateInfo = "Gate Info"
)

type style struct {
	colour netgraph.Colour
	shape  netgraph.Shape
}

// ImportCSV builds a store from an areas table and a network table.
//
// The areas table has the columns Area, Colour and Shape. A row whose Area is
// DEFAULT styles every node without a row of its own; without one, nodes use
// White and dot. The network table has the columns From, To and Gate Info;
// each row links From to To with Gate Info as the message, creating missing
// nodes on the way.
//
// A row repeating an already linked pair (in either direction) is skipped.
// ImportCSV returns the store and the number of skipped rows.
func ImportCSV(areas, network io.Reader, opts ...netgraph.Option) (*netgraph.Store, int, error) {
	styles, err := readAreas(areas)
	if err != nil {
		return nil, 0, err
	}

	rows, err := readTable(network, "network", ColumnFrom, ColumnTo, ColumnGateInfo)
	if err != nil {
		return nil, 0, err
	}

	s := netgraph.New(opts...)
	skipped := 0
	for i, row := range rows {
		from, to := row[ColumnFrom], row[ColumnTo]
		for _, name := range []string{from, to} {
			if s.Contains(name) {
				continue
			}
			st, ok := styles[name]
			if !ok {
				st = styles[DefaultArea]
			}
			if _, err := s.AddNode(name, st.colour, st.shape, ""); err != nil {
				return nil, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "network row %d", i+2)
			}
		}
		err := s.AddLink(from, to, row[ColumnGateInfo])
		if errors.Is(err, errors.ErrCodeDuplicateLink) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "network row %d", i+2)
		}
	}
	return s, skipped, nil
}

func readAreas(r io.Reader) (map[string]style, error) {
	rows, err := readTable(r, "areas", ColumnArea, ColumnColour, ColumnShape)
	if err != nil {
		return nil, err
	}

	styles := map[string]style{
		DefaultArea: {netgraph.DefaultColour, netgraph.DefaultShape},
	}
	for i, row := range rows {
		colour, err := netgraph.ParseColour(row[ColumnColour])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "areas row %d", i+2)
		}
		shape, err := netgraph.ParseShape(row[ColumnShape])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "areas row %d", i+2)
		}
		styles[row[ColumnArea]] = style{colour, shape}
	}
	return styles, nil
}

// readTable reads a headed CSV table into trimmed column maps. Every column in
// required must be present in the header.
func readTable(r io.Reader, table string, required ...string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s table", table)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s table is empty", table)
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s table has no %q column", table, col)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
