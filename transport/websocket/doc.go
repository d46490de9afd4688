// Package websocket streams search results to browser clients.
//
// Clients connect to /ws?channel=<name> and receive a JSON Message for every
// search published on that channel. Searches on stored maps are published on
// the map's name, inline searches on "inline". Clients subscribed to
// AllChannel receive everything.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastResult("map1", resp)
//
// Incoming client messages are read only to keep the connection alive.
package websocket
