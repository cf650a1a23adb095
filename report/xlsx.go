// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// xlsxSheet is the name of sheet in XLSX report.
const xlsxSheet = `Results`

// xlsxWriter write the links as spreadsheet, with the same columns as
// CSV.
type xlsxWriter struct{}

func (xlsxWriter) Write(w io.Writer, listLink []brokenlinks.Link) (err error) {
	var xlsx = excelize.NewFile()
	defer xlsx.Close()

	err = xlsx.SetSheetName(`Sheet1`, xlsxSheet)
	if err != nil {
		return err
	}

	var header = make([]any, 0, len(csvHeader))
	for _, name := range csvHeader {
		header = append(header, name)
	}
	err = xlsx.SetSheetRow(xlsxSheet, `A1`, &header)
	if err != nil {
		return err
	}

	var style int
	style, err = xlsx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	err = xlsx.SetCellStyle(xlsxSheet, `A1`, `C1`, style)
	if err != nil {
		return err
	}

	for x, link := range listLink {
		var cell string
		cell, err = excelize.CoordinatesToCellName(1, x+2)
		if err != nil {
			return err
		}

		var row = []any{link.Url, statusText(link), nil}
		if link.Code != 0 {
			row[2] = link.Code
		}
		err = xlsx.SetSheetRow(xlsxSheet, cell, &row)
		if err != nil {
			return err
		}
	}

	err = xlsx.SetColWidth(xlsxSheet, `A`, `A`, 60)
	if err != nil {
		return err
	}
	err = xlsx.SetColWidth(xlsxSheet, `B`, `B`, 20)
	if err != nil {
		return err
	}

	_, err = xlsx.WriteTo(w)
	return err
}
