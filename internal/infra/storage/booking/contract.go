package booking

import (
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

type TxExecutor = dbmetrics.TxExecutor
