// Package ws is the message channel between the host and panel surfaces.
//
// Each open panel gets at most one live WebSocket channel, acquired once
// per surface lifetime. Inbound frames are decoded into the typed message
// contract and dispatched through the router; malformed frames are logged
// and dropped. Writes are serialized per channel, preserving FIFO delivery.
//
// The handler doubles as the panel manager's view factory: a panel's
// native view is its rendered document plus this channel, so revealing
// pushes a message and releasing closes the connection.
//
// Example Usage:
//
//	handler := ws.NewHandler(router, pending, logger)
//	manager := panel.NewManager(handler, generator)
//	handler.SetManager(manager)
//	engine.GET("/stream", handler.HandleConnection)
package ws
