// Package res is designed for creating resource-oriented web applications.
//	- routes requests to resources: one handler per HTTP method of a path
//	- supports named parameters in the path (":name") and catch-all ("*name")
//	- negotiates the response format (JSON, HTML, XML) by content type
//	- the response coder can be replaced wholesale by a single assignment
//	- makes it easy to give any objects that support serialization
//	- it is possible to set your own headers to output
//	- compresses responses and is ready for logging them
package res
