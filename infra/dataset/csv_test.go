package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhoffer/parkcast/core/model"
)

const header = "Parking_Spot_ID,Parking_Lot_Section,Occupancy_Status,Proximity_To_Exit," +
	"Spot_Size,Electric_Vehicle,Weather_Temperature,Weather_Precipitation,Nearby_Traffic_Level," +
	"Sensor_Reading_Proximity,Sensor_Reading_Pressure,Sensor_Reading_Ultrasonic," +
	"Vehicle_Type_Weight,Vehicle_Type_Height,User_Parking_History,Reserved_Status,Entry_Time,Timestamp"

func TestRead(t *testing.T) {
	data := header + "\n" +
		"12,A,Occupied,4.5,Compact,1,21.5,0.2,High,3.1,1.8,95,1500,1.6,7,0,9,2026-03-10 09:15:00\n" +
		"3,B,Available,12,Standard,0,18,0,Low,2,1,80,1200,1.5,2,1,14,not-a-date\n"
	table, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("len = %d", table.Len())
	}

	rec := table.Records()[0]
	if rec.SpotID != 12 || rec.Section != "A" || !rec.Occupied {
		t.Errorf("row 1 identity: %+v", rec)
	}
	if rec.Size != model.SizeCompact || !rec.EVCharging || rec.Reserved {
		t.Errorf("row 1 flags: %+v", rec)
	}
	if rec.Hour != 9 {
		t.Errorf("row 1 hour = %d", rec.Hour)
	}
	// 2026-03-10 is a Tuesday; Monday=0.
	if rec.Weekday != 1 {
		t.Errorf("row 1 weekday = %d", rec.Weekday)
	}
	if rec.TrafficLevel != model.TrafficHigh || rec.DistanceToExit != 4.5 {
		t.Errorf("row 1 attributes: %+v", rec)
	}

	rec = table.Records()[1]
	if rec.Occupied || rec.EVCharging || !rec.Reserved {
		t.Errorf("row 2 flags: %+v", rec)
	}
	// Unparseable timestamp keeps the row but drops the weekday.
	if rec.Weekday != -1 {
		t.Errorf("row 2 weekday = %d", rec.Weekday)
	}
	if rec.Hour != 14 {
		t.Errorf("row 2 hour = %d", rec.Hour)
	}
}

func TestReadMissingColumn(t *testing.T) {
	data := "Parking_Spot_ID,Parking_Lot_Section\n1,A\n"
	if _, err := Read(strings.NewReader(data)); err == nil {
		t.Fatal("expected an error for missing columns")
	} else if !strings.Contains(err.Error(), "missing required column") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadBadSpotID(t *testing.T) {
	data := header + "\nnope,A,Occupied,4.5,Compact,1,21.5,0.2,High,3.1,1.8,95,1500,1.6,7,0,9,2026-03-10 09:15:00\n"
	if _, err := Read(strings.NewReader(data)); err == nil {
		t.Fatal("expected an error for a non-numeric spot id")
	}
}

func TestReadEmptyBody(t *testing.T) {
	table, err := Read(strings.NewReader(header + "\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("len = %d", table.Len())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parking.csv")
	data := header + "\n1,A,Available,5,Standard,0,20,0,Medium,2,1,90,1300,1.5,3,0,8,2026-03-09 08:00:00\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d", table.Len())
	}
	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
