// Package parser decodes response bodies.
//
// The default parsers are chosen by accepted type: JSON for
// application/json, Text for text/html and text/plain, XML for
// application/xml and Raw for everything else. Every parser implements
// service.Parser.
package parser
