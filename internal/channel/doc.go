// Package channel connects to the shared tracking state published by the producer.
//
// A channel is the pair of a fixed-size segment holding the latest RawState and
// an auto-reset signal raised after every write. Reads take no lock: the
// producer may be writing while the consumer reads, and a torn record is
// accepted because the next tick overwrites it.
package channel
