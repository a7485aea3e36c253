package response

type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}
