package vm

// kernelSource is appended to every user program before compilation
// (spec §6). It drives `update`/`draw` off the edge-triggered tick
// predicates the driver sets via SetNeedsUpdate/SetNeedsDraw; user code
// is expected to define `update` and `draw` before the kernel's `while`
// is reached, satisfying the language's define-before-use rule.
const kernelSource = `
(while true (
  (if (__needs_update) ((update)))
  (if (__needs_draw) ((clear) (draw)))
))
`
