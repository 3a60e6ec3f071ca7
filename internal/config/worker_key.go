package config

type WorkerKeyStruct struct {
	ExportReportsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ExportReportsQueue: "export_reports_queue",
}
