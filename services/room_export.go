package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hotel-admin/models"
)

const roomSheet = "Rooms"

// RoomExportHeader is the first row of the exported workbook.
var RoomExportHeader = []string{
	"Room Number",
	"Device IP",
	"MAC Address",
	"Version",
	"Active",
	"Group",
}

var roomColumnWidths = []float64{15, 18, 20, 12, 10, 20}

// ExportRoomsXLSX renders rooms as a single-sheet workbook. groupNames maps
// group ids to display names.
func ExportRoomsXLSX(rooms []models.Room, groupNames map[uint]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(roomSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range RoomExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(roomSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(roomSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(roomSheet, name, name, roomColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, r := range rooms {
		active := "No"
		if r.ActiveStatus {
			active = "Yes"
		}
		group := ""
		if r.GroupID != nil {
			group = groupNames[*r.GroupID]
		}

		row := []interface{}{r.RoomNumber, r.DeviceIP, r.MacAddress, r.JVersion, active, group}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(roomSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
