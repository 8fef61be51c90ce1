package types

// DataType is the value format inferred from a sensor's first reading
type DataType int

const (
	Integer DataType = iota
	Boolean
	Float
	String
	Unknown
)

// String returns the lower-case name of the data type
func (t DataType) String() string {
	switch t {
	case Integer:
		return "int"
	case Boolean:
		return "bool"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Record is one successfully parsed input line
type Record struct {
	Timestamp int64
	SensorID  string
	Value     string
}

// Entry represents a single reading stored for a sensor.
// Value keeps the original text; it is never converted.
type Entry struct {
	Timestamp int64
	Value     string
}

// Entry returns the stored form of the record
func (r Record) Entry() Entry {
	return Entry{Timestamp: r.Timestamp, Value: r.Value}
}
