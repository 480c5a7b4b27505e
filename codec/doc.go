/*
Package codec defines the cursor and continuation contracts shared by the WAML
parsers and writers.

An Input is a pull cursor over a stream of code points. At any moment it is in
exactly one standing:

  - Cont: a code point is ready at Head.
  - Empty: no code point is ready yet, but more input may arrive.
  - Done: the stream has ended; no more input will ever arrive.
  - Error: the upstream source failed; Err reports why.

A Parser is a continuation. Feeding it an Input consumes as much as it can and
returns either a finished parser (IsDone), a failed parser (IsError) or a new
continuation (IsCont) that resumes exactly where consumption stopped. A parser
suspends only when the input is Empty, so feeding a document in one call or one
code point at a time yields the same result.

Writers mirror parsers: pulling a Writer through an Output writes as much as
the output accepts and returns the continuation of the remaining work.

Continuations are linear. Once fed, a continuation must be replaced by the one
it returned and never fed again.
*/
package codec
