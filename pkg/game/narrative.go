package game

const initializedText = `🌐 Player profile initialized! Welcome to CODESCAPE.

Reality flickers. Digital static clears. You open your eyes to find yourself in a vast network of interconnected systems...

Type 'wake up' to begin.`

const notInitializedText = "Please initialize your player profile first!"

const awakeningText = `🌐 DIGITAL AWAKENING INITIATED 🌐

Your consciousness emerges from the static...

You find yourself interfacing with a vast cyberpunk network.
Reality bends around streams of flowing data.

The system whispers: "Welcome to CODESCAPE, hacker."

Type 'scan environment' to analyze your surroundings.`

const scanningText = `📡 ENVIRONMENT SCAN COMPLETE 📡

You are standing on the entry node of the network.

- Fragments of raw data drift past like neon snow.
- A dormant terminal hums at the edge of the node, its cursor blinking.
- A corridor of light stretches forward into the nexus.

What do you do?`

const helpText = `📖 CODESCAPE COMMANDS 📖

wake up           - Bring your consciousness online
scan environment  - Analyze your surroundings
examine data      - Inspect the data fragments nearby
access terminal   - Jack into the nearest terminal
move forward      - Travel deeper into the network
status            - Show your player profile
help              - Show this list`

const statusText = `🧬 PLAYER STATUS 🧬

Handle:      Unregistered Hacker
Connection:  Stable
Location:    Network Entry Node
Integrity:   100%
Modules:     0 compiled`

const examiningText = `🔍 DATA ANALYSIS 🔍

You reach into the drifting fragments and pull one close.
Lines of half-formed code unfold in front of you: function signatures
without bodies, interfaces waiting for an implementation.

The fragments seem to want to become something.`

const hackingText = `💻 TERMINAL ACCESS GRANTED 💻

The terminal wakes as you touch it. Green text scrolls across the glass:

  > NEXUS BUILD SYSTEM v0.1
  > fragments detected: 3
  > contributors online: 0

A prompt blinks, waiting for your input.`

const exploringText = `🚀 MOVING FORWARD 🚀

You step into the corridor of light. The entry node falls away behind you
as packets stream past at the speed of thought.

Ahead, the corridor opens onto the Nexus: a city of towering repositories
whose windows glow with the work of a thousand unseen hackers.`

const unknownCommandFormat = `Unknown command: '%s'

The network does not recognize that instruction.
Type 'help' to see available commands.`
