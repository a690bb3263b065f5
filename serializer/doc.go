// Package serializer encodes request parameters into request bodies.
//
// Form produces application/x-www-form-urlencoded pairs and accepts only
// string values. JSON produces a JSON document from any parameter mapping
// whose values are JSON-representable. Both implement service.Serializer.
package serializer
