package notification

import (
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
