package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow/go/v14/parquet/file"

	"taxi-trip-lab/internal/domain"
)

// Column names of the trip dataset as shipped by the TLC.
const (
	colPickupTime   = "tpep_pickup_datetime"
	colDropoffTime  = "tpep_dropoff_datetime"
	colPULocationID = "PULocationID"
	colFareAmount   = "fare_amount"
	colTipAmount    = "tip_amount"
	colTotalAmount  = "total_amount"
	colTripDistance = "trip_distance"
	colPaymentType  = "payment_type"
)

const readBatchSize = 8192

// ParquetSource loads the raw trip table from a local parquet file.
type ParquetSource struct {
	path string
}

// NewParquetSource creates a source reading from path.
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

// Name identifies the source in error messages.
func (s *ParquetSource) Name() string {
	return "parquet:" + s.path
}

// Load reads all row groups of the file into a raw TripTable.
func (s *ParquetSource) Load(ctx context.Context) (*domain.TripTable, error) {
	pf, err := file.OpenParquetFile(s.path, false)
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	return readTripFile(ctx, pf)
}

// tripColumns holds the resolved schema positions of the required columns.
type tripColumns struct {
	pickup, dropoff, puLocation         int
	fare, tip, total, distance, payment int
}

func resolveTripColumns(pf *file.Reader) (tripColumns, error) {
	cols := tripColumns{
		pickup: -1, dropoff: -1, puLocation: -1,
		fare: -1, tip: -1, total: -1, distance: -1, payment: -1,
	}

	schema := pf.MetaData().Schema
	for i := 0; i < schema.NumColumns(); i++ {
		switch schema.Column(i).Name() {
		case colPickupTime:
			cols.pickup = i
		case colDropoffTime:
			cols.dropoff = i
		case colPULocationID:
			cols.puLocation = i
		case colFareAmount:
			cols.fare = i
		case colTipAmount:
			cols.tip = i
		case colTotalAmount:
			cols.total = i
		case colTripDistance:
			cols.distance = i
		case colPaymentType:
			cols.payment = i
		}
	}

	for name, idx := range map[string]int{
		colPickupTime: cols.pickup, colDropoffTime: cols.dropoff,
		colPULocationID: cols.puLocation, colFareAmount: cols.fare,
		colTipAmount: cols.tip, colTotalAmount: cols.total,
		colTripDistance: cols.distance, colPaymentType: cols.payment,
	} {
		if idx < 0 {
			return cols, fmt.Errorf("required column %q not found in schema", name)
		}
	}
	return cols, nil
}

func readTripFile(ctx context.Context, pf *file.Reader) (*domain.TripTable, error) {
	cols, err := resolveTripColumns(pf)
	if err != nil {
		return nil, err
	}

	totalRows := 0
	for i := 0; i < pf.NumRowGroups(); i++ {
		totalRows += int(pf.RowGroup(i).NumRows())
	}

	table := &domain.TripTable{
		PickupTime:   make([]time.Time, 0, totalRows),
		DropoffTime:  make([]time.Time, 0, totalRows),
		PULocationID: make([]int64, 0, totalRows),
		FareAmount:   make([]float64, 0, totalRows),
		TipAmount:    make([]float64, 0, totalRows),
		TotalAmount:  make([]float64, 0, totalRows),
		TripDistance: make([]float64, 0, totalRows),
		PaymentType:  make([]int64, 0, totalRows),
	}

	for rg := 0; rg < pf.NumRowGroups(); rg++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readRowGroup(pf.RowGroup(rg), cols, table); err != nil {
			return nil, fmt.Errorf("row group %d: %w", rg, err)
		}
	}
	return table, nil
}

func readRowGroup(rg *file.RowGroupReader, cols tripColumns, table *domain.TripTable) error {
	pickup, err := readTimestampColumn(rg, cols.pickup)
	if err != nil {
		return err
	}
	dropoff, err := readTimestampColumn(rg, cols.dropoff)
	if err != nil {
		return err
	}
	location, err := readIntColumn(rg, cols.puLocation)
	if err != nil {
		return err
	}
	fare, err := readFloatColumn(rg, cols.fare)
	if err != nil {
		return err
	}
	tip, err := readFloatColumn(rg, cols.tip)
	if err != nil {
		return err
	}
	total, err := readFloatColumn(rg, cols.total)
	if err != nil {
		return err
	}
	distance, err := readFloatColumn(rg, cols.distance)
	if err != nil {
		return err
	}
	payment, err := readIntColumn(rg, cols.payment)
	if err != nil {
		return err
	}

	// Ragged column reads mean a corrupt file; refuse to build a partial
	// table from it.
	if err := columnLengthsMatch(len(pickup), len(dropoff), len(location),
		len(fare), len(tip), len(total), len(distance), len(payment)); err != nil {
		return err
	}

	table.PickupTime = append(table.PickupTime, pickup...)
	table.DropoffTime = append(table.DropoffTime, dropoff...)
	table.PULocationID = append(table.PULocationID, location...)
	table.FareAmount = append(table.FareAmount, fare...)
	table.TipAmount = append(table.TipAmount, tip...)
	table.TotalAmount = append(table.TotalAmount, total...)
	table.TripDistance = append(table.TripDistance, distance...)
	table.PaymentType = append(table.PaymentType, payment...)
	return nil
}

// columnLengthsMatch verifies every column read decoded the same row count.
func columnLengthsMatch(lengths ...int) error {
	for _, l := range lengths[1:] {
		if l != lengths[0] {
			return fmt.Errorf("column reads disagree on row count: %v", lengths)
		}
	}
	return nil
}

// readTimestampColumn reads an INT64 timestamp column. The TLC files store
// microsecond precision.
func readTimestampColumn(rg *file.RowGroupReader, colIdx int) ([]time.Time, error) {
	col, err := rg.Column(colIdx)
	if err != nil {
		return nil, err
	}

	reader, ok := col.(*file.Int64ColumnChunkReader)
	if !ok {
		return nil, fmt.Errorf("column %d: expected INT64 timestamps, got %T", colIdx, col)
	}

	maxDef := col.Descriptor().MaxDefinitionLevel()
	result := make([]time.Time, 0, rg.NumRows())
	values := make([]int64, readBatchSize)
	defLevels := make([]int16, readBatchSize)

	for {
		total, read, err := reader.ReadBatch(readBatchSize, values, defLevels, nil)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", colIdx, err)
		}
		if total == 0 {
			break
		}
		vi := 0
		for i := 0; i < int(total); i++ {
			if maxDef == 0 || defLevels[i] == maxDef {
				if vi < read {
					result = append(result, time.Unix(0, values[vi]*1000).UTC())
					vi++
				}
			} else {
				result = append(result, time.Time{})
			}
		}
	}
	return result, nil
}

func readIntColumn(rg *file.RowGroupReader, colIdx int) ([]int64, error) {
	col, err := rg.Column(colIdx)
	if err != nil {
		return nil, err
	}

	maxDef := col.Descriptor().MaxDefinitionLevel()
	result := make([]int64, 0, rg.NumRows())
	defLevels := make([]int16, readBatchSize)

	switch reader := col.(type) {
	case *file.Int64ColumnChunkReader:
		values := make([]int64, readBatchSize)
		for {
			total, read, err := reader.ReadBatch(readBatchSize, values, defLevels, nil)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", colIdx, err)
			}
			if total == 0 {
				break
			}
			vi := 0
			for i := 0; i < int(total); i++ {
				if maxDef == 0 || defLevels[i] == maxDef {
					if vi < read {
						result = append(result, values[vi])
						vi++
					}
				} else {
					result = append(result, 0)
				}
			}
		}
	case *file.Int32ColumnChunkReader:
		values := make([]int32, readBatchSize)
		for {
			total, read, err := reader.ReadBatch(readBatchSize, values, defLevels, nil)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", colIdx, err)
			}
			if total == 0 {
				break
			}
			vi := 0
			for i := 0; i < int(total); i++ {
				if maxDef == 0 || defLevels[i] == maxDef {
					if vi < read {
						result = append(result, int64(values[vi]))
						vi++
					}
				} else {
					result = append(result, 0)
				}
			}
		}
	default:
		return nil, fmt.Errorf("column %d: expected INT32/INT64, got %T", colIdx, col)
	}
	return result, nil
}

func readFloatColumn(rg *file.RowGroupReader, colIdx int) ([]float64, error) {
	col, err := rg.Column(colIdx)
	if err != nil {
		return nil, err
	}

	maxDef := col.Descriptor().MaxDefinitionLevel()
	result := make([]float64, 0, rg.NumRows())
	defLevels := make([]int16, readBatchSize)

	switch reader := col.(type) {
	case *file.Float64ColumnChunkReader:
		values := make([]float64, readBatchSize)
		for {
			total, read, err := reader.ReadBatch(readBatchSize, values, defLevels, nil)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", colIdx, err)
			}
			if total == 0 {
				break
			}
			vi := 0
			for i := 0; i < int(total); i++ {
				if maxDef == 0 || defLevels[i] == maxDef {
					if vi < read {
						result = append(result, values[vi])
						vi++
					}
				} else {
					result = append(result, 0)
				}
			}
		}
	case *file.Float32ColumnChunkReader:
		values := make([]float32, readBatchSize)
		for {
			total, read, err := reader.ReadBatch(readBatchSize, values, defLevels, nil)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", colIdx, err)
			}
			if total == 0 {
				break
			}
			vi := 0
			for i := 0; i < int(total); i++ {
				if maxDef == 0 || defLevels[i] == maxDef {
					if vi < read {
						result = append(result, float64(values[vi]))
						vi++
					}
				} else {
					result = append(result, 0)
				}
			}
		}
	default:
		return nil, fmt.Errorf("column %d: expected FLOAT/DOUBLE, got %T", colIdx, col)
	}
	return result, nil
}
