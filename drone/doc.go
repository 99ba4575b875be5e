/*Package drone presents a single semantic flight command API over two
interchangeable vehicle backends: a physical Ryze Tello® (SDK text protocol
over UDP) and a browser-based simulator (JSON commands over a websocket).

Disclaimer

Tello is a registered trademark of Ryze Tech. The authors of this package
are in no way affiliated with Ryze, DJI, or Intel. Use this package at your
own risk; the authors are in no way responsible for any damage caused either
to or by the drone when using this software.

Concepts

The backend is chosen once, at construction, through Config.Simulator.
Mission code never branches on the backend: both drivers implement the same
Driver interface and the Drone wrapper exposes identical primitives
(MoveForward, RotateClockwise, TakeOff, ...) for both.

Every primitive checks that the vehicle is connected (and, for motion and
rotation, airborne) before forwarding to the driver, and pauses for a
settle delay afterwards. On the physical vehicle each command additionally
blocks until the SDK acknowledges it; the simulator offers no such
acknowledgment, so there the settle delay is the only completion signal.
TimingPolicy.Fast shortens the delays for quick simulated runs.

Position is never read back from the vehicle: callers that need a pose must
dead-reckon from the commands they issue (see the mission package).
*/
package drone
