// internal/udev/record.go
package udev

// Record is a snapshot of one device taken while its handle was open
type Record struct {
	subsystem  string
	devType    string
	devNode    string
	properties map[string]string
}

// NewRecord builds a device record. The properties map is copied.
func NewRecord(subsystem, devType, devNode string, properties map[string]string) *Record {
	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}

	return &Record{
		subsystem:  subsystem,
		devType:    devType,
		devNode:    devNode,
		properties: props,
	}
}

// Subsystem returns the subsystem the device belongs to
func (r *Record) Subsystem() string { return r.subsystem }

// DevType returns the device type within its subsystem
func (r *Record) DevType() string { return r.devType }

// DevNode returns the device node path, e.g. /dev/ttyUSB0
func (r *Record) DevNode() string { return r.devNode }

// HasProperty reports whether the property is set, even if its value is empty
func (r *Record) HasProperty(name string) bool {
	_, ok := r.properties[name]
	return ok
}

// Property returns the property value or "" when it is not set
func (r *Record) Property(name string) string {
	return r.properties[name]
}
