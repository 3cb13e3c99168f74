package domain

// InstanceStatus represents the lifecycle state of a training instance.
// Instances are never deleted; status transitions replace deletion.
type InstanceStatus string

const (
	StatusPlanned  InstanceStatus = "planned"
	StatusCanceled InstanceStatus = "canceled"
	StatusMoved    InstanceStatus = "moved"
	StatusExtra    InstanceStatus = "extra"
)

func (s InstanceStatus) String() string { return string(s) }

func (s InstanceStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusCanceled, StatusMoved, StatusExtra:
		return true
	}
	return false
}

// ChangeType classifies an entry in the schedule change log.
type ChangeType string

const (
	ChangeAdded          ChangeType = "added"
	ChangeCanceled       ChangeType = "canceled"
	ChangeTimeChanged    ChangeType = "time_changed"
	ChangeMoved          ChangeType = "moved"
	ChangeTrainerChanged ChangeType = "trainer_changed"
)

func (c ChangeType) String() string { return string(c) }

func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeAdded, ChangeCanceled, ChangeTimeChanged, ChangeMoved, ChangeTrainerChanged:
		return true
	}
	return false
}
