package scandto

type GetScanRunsInput struct {
	Limit int `validate:"gte=0,lte=100"`
}
