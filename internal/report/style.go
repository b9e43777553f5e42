package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Report palette.
const (
	headerFill = "780373"
	headerFont = "FFFFFF"
	shadedFill = "D3D3D3"
	borderInk  = "000000"
)

type styles struct {
	header int
	cell   int
	shaded int
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	border := make([]excelize.Border, len(sides))
	for i, side := range sides {
		border[i] = excelize.Border{Type: side, Color: borderInk, Style: 1}
	}
	return border
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFont},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: centered(),
		Border:    thinBorder(),
	})
	if err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}

	st.cell, err = f.NewStyle(&excelize.Style{
		Alignment: centered(),
		Border:    thinBorder(),
	})
	if err != nil {
		return st, fmt.Errorf("cell style: %w", err)
	}

	st.shaded, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{shadedFill}},
		Alignment: centered(),
		Border:    thinBorder(),
	})
	if err != nil {
		return st, fmt.Errorf("shaded style: %w", err)
	}

	return st, nil
}
