package websocket

// OutgoingMessage server -> client, e.g. {"event":"odds","data":{...}}
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage client -> server; From is filled in by the hub.
type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
