package request

// Request structs for the annotation API.

// LoadJobRequest queues an asynchronous remote annotation load.
type LoadJobRequest struct {
	URL   string `json:"url"`
	TaxID int    `json:"taxid"`
}
