package server

import (
	"fmt"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/ValentinKolb/ipfinder/lib/gen"
	"github.com/ValentinKolb/ipfinder/lib/hostinfo"
	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/lib/registry/lregistry"
	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/serializer"
	"github.com/ValentinKolb/ipfinder/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("rpc")

// serverNetwork is a single network served by the RPC server
// It contains the registry it encapsulates and the adapter
// that handles requests for the registry
type serverNetwork struct {
	Registry registry.IRegistry
	Adapter  IRPCServerAdapter
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		networks:   xsync.NewMapOf[uint64, serverNetwork](),
	}
}

// RPCServer serves one device registry per configured network.
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	networks   *xsync.MapOf[uint64, serverNetwork]
}

// handle decodes a request, lets the network's adapter process it and
// encodes the response. Every failure is reported as an error message.
func (s *RPCServer) handle(networkId uint64, req []byte) []byte {
	var msg common.Message
	var respMsg *common.Message

	start := time.Now()

	if network, ok := s.networks.Load(networkId); !ok {
		respMsg = common.NewErrorResponse(fmt.Sprintf("network %d not found", networkId))
	} else if err := s.serializer.Deserialize(req, &msg); err != nil {
		respMsg = common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err))
	} else {
		respMsg = network.Adapter.Handle(&msg, network.Registry)
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`ipfinder_rpc_requests_total{type=%q}`, msg.MsgType)).Inc()
	metrics.GetOrCreateHistogram(fmt.Sprintf(`ipfinder_rpc_request_duration_seconds{type=%q}`, msg.MsgType)).UpdateDuration(start)
	if respMsg.Err != "" {
		metrics.GetOrCreateCounter(`ipfinder_rpc_errors_total`).Inc()
		Logger.Debugf("request on network %d failed: %s", networkId, respMsg.Err)
	}

	val, err := s.serializer.Serialize(*respMsg)
	if err != nil {
		Logger.Errorf("failed to serialize response: %v", err)
		val, _ = s.serializer.Serialize(*common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
	}
	return val
}

// newRegistry creates the registry for a network of the given type
func (s *RPCServer) newRegistry(networkType common.ServerNetworkType) (registry.IRegistry, error) {
	opts := gen.DefaultOptions()
	if s.config.SeedCount > 0 {
		opts.Count = s.config.SeedCount
	}
	if s.config.BaseIP != "" {
		opts.BaseIP = s.config.BaseIP
	}
	opts.PetNames = s.config.PetNames

	switch networkType {
	case common.NetworkTypeEmpty:
		return lregistry.NewLocalRegistry(lregistry.EmptyMap, gen.NewGenerator(opts)), nil
	case common.NetworkTypeRandom:
		return lregistry.NewLocalRegistry(lregistry.SeededMap(gen.NewGenerator(opts)), gen.NewGenerator(opts)), nil
	default:
		return nil, fmt.Errorf("invalid network type: %s", networkType)
	}
}

func (s *RPCServer) init() error {
	if err := common.InitLoggers(s.config); err != nil {
		return err
	}

	if info, err := hostinfo.Lookup(); err != nil {
		Logger.Warningf("failed to look up host info: %v", err)
	} else {
		Logger.Infof("running on %s", info)
	}

	Logger.Infof("%s", s.config.String())

	if err := s.setup(); err != nil {
		return err
	}

	Logger.Infof("ipfinder setup completed successfully")
	return nil
}

// setup creates the registries of all configured networks and registers the
// request handler at the transport
func (s *RPCServer) setup() error {
	for _, networkConfig := range s.config.Networks {
		if _, exists := s.networks.Load(networkConfig.NetworkID); exists {
			return fmt.Errorf("duplicate network id %d", networkConfig.NetworkID)
		}

		reg, err := s.newRegistry(networkConfig.Type)
		if err != nil {
			return err
		}
		s.networks.Store(networkConfig.NetworkID, serverNetwork{
			Registry: reg,
			Adapter:  NewIRegistryServerAdapter(),
		})
		s.registerGauges(networkConfig.NetworkID)

		Logger.Infof("created %s registry for network %d", networkConfig.Type, networkConfig.NetworkID)
	}

	s.transport.RegisterHandler(s.handle)
	return nil
}

// registerGauges exposes size and search count of a network
func (s *RPCServer) registerGauges(networkId uint64) {
	id := strconv.FormatUint(networkId, 10)
	stat := func(f func(registry.Stats) float64) func() float64 {
		return func() float64 {
			network, ok := s.networks.Load(networkId)
			if !ok {
				return 0
			}
			stats, err := network.Registry.Stats()
			if err != nil {
				return 0
			}
			return f(stats)
		}
	}

	metrics.GetOrCreateGauge(fmt.Sprintf(`ipfinder_network_devices{network=%q}`, id),
		stat(func(st registry.Stats) float64 { return float64(st.Size) }))
	metrics.GetOrCreateGauge(fmt.Sprintf(`ipfinder_network_searches{network=%q}`, id),
		stat(func(st registry.Stats) float64 { return float64(st.SearchCount) }))
}

// Serve starts the RPC server
// This function will also initialize the server plus the networks and start the transport layer
func (s *RPCServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
