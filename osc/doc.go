//Package osc implements encoding and decoding of OpenSoundControl messages.
//
//This implementation covers the message subset of the Open Sound Control 1.0
//Specification (http://opensoundcontrol.org/spec-1_0.html) used by the oscwatch
//tool: single messages carried one-per-UDP-datagram, with the TypeTags
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' (blob)
//
//Arguments carrying any other tag are preserved as Unknown placeholders, so a
//message with one exotic argument still decodes with a usable address and the
//rest of its arguments intact. Bundles are out of scope; a '#bundle' packet is
//a decode error, not a crash.
//
//The package is pure: no I/O, no shared state. Decoding never panics on
//malformed input, whatever the byte sequence.
//
//Encoding a message:
//  msg := osc.NewMessage("/mixer/ch/3/fader", osc.Float32(0.82))
//  data, err := msg.MarshalBinary()
//
//Decoding a datagram:
//  msg, err := osc.ParseMessage(datagram)
//
//Turning operator input into an argument:
//  arg, err := osc.InferArgument(`"red"`) // String("red")
package osc
